package tasks

import (
	"encoding/json"
	"time"

	"voltpath/models"

	"github.com/hibiken/asynq"
)

const (
	TypeWelcomeEmail  = "email:welcome"
	TypeConsentRecord = "consent:record"
	TypeProfileApply  = "profile:apply"
)

// NewWelcomeEmailTask builds the fire-and-forget welcome email task. A single
// retry is allowed; beyond that the mail is dropped.
func NewWelcomeEmailTask(payload models.WelcomeEmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeWelcomeEmail, b)
	opts := []asynq.Option{asynq.MaxRetry(1)}

	return task, opts, nil
}

// NewConsentRecordTask builds the task that durably stores a consent record.
// Consent capture must not block the signup flow, but it must eventually
// land, so the queue retries it.
func NewConsentRecordTask(record models.ConsentRecord) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeConsentRecord, b)
	opts := []asynq.Option{asynq.MaxRetry(5)}

	return task, opts, nil
}

// NewProfileApplyTask builds the task that retries a failed onboarding
// profile write from the staged fallback.
func NewProfileApplyTask(payload models.ProfileApplyPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeProfileApply, b)
	opts := []asynq.Option{asynq.MaxRetry(10), asynq.ProcessIn(30 * time.Second)}

	return task, opts, nil
}

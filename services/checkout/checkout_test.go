package checkout

import (
	"context"
	"errors"
	"testing"

	"voltpath/services/onboarding"

	"github.com/stretchr/testify/assert"
)

type stubStagingStore struct {
	values map[onboarding.StagingKey]string
	getErr error
}

func (s *stubStagingStore) Set(sessionID string, key onboarding.StagingKey, value string) error {
	s.values[key] = value
	return nil
}

func (s *stubStagingStore) Get(sessionID string, key onboarding.StagingKey) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.values[key], nil
}

func (s *stubStagingStore) Remove(sessionID string, keys ...onboarding.StagingKey) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestCreateSessionWithoutStagedSelection(t *testing.T) {
	svc := &DefaultCheckoutService{
		Staging:    &stubStagingStore{values: map[onboarding.StagingKey]string{}},
		SuccessURL: "https://voltpath.test/welcome",
		CancelURL:  "https://voltpath.test/checkout",
	}

	_, err := svc.CreateSession(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNoStagedSelection)
}

func TestCreateSessionWithPartialStaging(t *testing.T) {
	// A plan without its price is an incomplete hand-off, not a usable one.
	svc := &DefaultCheckoutService{
		Staging: &stubStagingStore{values: map[onboarding.StagingKey]string{
			onboarding.StageCheckoutPlan: "electrician-monthly",
		}},
	}

	_, err := svc.CreateSession(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNoStagedSelection)
}

func TestCreateSessionSurfacesStagingReadErrors(t *testing.T) {
	svc := &DefaultCheckoutService{
		Staging: &stubStagingStore{getErr: errors.New("redis unavailable")},
	}

	_, err := svc.CreateSession(context.Background(), "sess-1")
	assert.ErrorContains(t, err, "failed to read staged plan")
}

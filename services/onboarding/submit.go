package onboarding

import (
	"context"
	"fmt"
	"time"

	profileRepo "voltpath/database/repository/profile"
	"voltpath/models"
	"voltpath/services/tasks"
	"voltpath/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit runs the terminal submission chain:
//
//  1. account creation — fatal on failure, error surfaced verbatim, session
//     retained so the user retries without re-entering earlier steps;
//  2. profile write — best-effort; on failure the role is staged as a
//     fallback and a retry task is enqueued;
//  3. consent record — queued with retry, never blocks;
//  4. welcome email — queued, failure swallowed beyond a warning;
//  5. checkout staging — plan/price for the selected role;
//  6. cleanup — the session is deleted only after staging succeeded, and the
//     fallback role key is exempt until the retry task confirms the write.
func (s *DefaultOnboardingService) Submit(ctx context.Context, sessionID string, consent models.ConsentDetails) (*models.OnboardingSession, *SubmissionResult, error) {
	logger := utils.GetLogger()

	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Step != models.StepConsent {
		return nil, nil, ErrInvalidStep
	}
	if session.SubmitInFlight {
		return nil, nil, ErrSubmissionInFlight
	}

	session.Error = ""
	details := consent
	session.Consent = &details

	if !consent.RequiredAccepted() {
		session.Error = MsgAcceptRequired
		if err := s.Sessions.Save(session); err != nil {
			return nil, nil, err
		}
		return session, nil, nil
	}
	if session.Account == nil {
		return nil, nil, fmt.Errorf("onboarding session %s is missing account data", session.ID)
	}

	session.SubmitInFlight = true
	if err := s.Sessions.Save(session); err != nil {
		return nil, nil, err
	}

	email := profileRepo.NormalizeEmail(session.Account.Email)
	fullName := session.Account.FullName

	// 1. Account creation. The only fatal collaborator in the chain.
	userID, err := s.Accounts.CreateAccount(ctx, email, session.Account.Password, fullName)
	if err != nil {
		session.SubmitInFlight = false
		session.Error = err.Error()
		if saveErr := s.Sessions.Save(session); saveErr != nil {
			return nil, nil, saveErr
		}
		return session, nil, nil
	}

	// 2. Profile write. The account now exists, so a failure here must not
	// block the user; stage the role and let the worker finish the job.
	profile := &models.Profile{
		ID:                  userID,
		Email:               email,
		FullName:            fullName,
		Role:                session.Role,
		OnboardingCompleted: false,
	}
	if err := s.Profiles.UpsertOnboarding(profile); err != nil {
		logger.Error("Submit: profile write failed, staging fallback role",
			zap.String("userID", userID), zap.Error(err))
		if stageErr := s.Staging.Set(session.ID, StageFallbackRole, string(session.Role)); stageErr != nil {
			logger.Error("Submit: failed to stage fallback role", zap.Error(stageErr))
		}
		s.enqueueProfileApply(models.ProfileApplyPayload{
			UserID:    userID,
			SessionID: session.ID,
			Email:     email,
			FullName:  fullName,
			Role:      session.Role,
		})
	}

	// 3. Consent record, with its own retry policy in the queue.
	record := models.ConsentRecord{
		ID:                     uuid.New().String(),
		Email:                  email,
		FullName:               fullName,
		TermsAccepted:          consent.TermsAccepted,
		PrivacyAccepted:        consent.PrivacyAccepted,
		DataProcessingAccepted: consent.DataProcessingAccepted,
		MarketingOptIn:         consent.MarketingOptIn,
		AcceptedAt:             time.Now(),
	}
	if task, opts, err := tasks.NewConsentRecordTask(record); err == nil {
		if _, err := s.Queue.Enqueue(task, opts...); err != nil {
			logger.Error("Submit: failed to enqueue consent record", zap.String("userID", userID), zap.Error(err))
		}
	} else {
		logger.Error("Submit: failed to build consent record task", zap.Error(err))
	}

	// 4. Welcome email. Fire-and-forget.
	if task, opts, err := tasks.NewWelcomeEmailTask(models.WelcomeEmailPayload{
		UserID:   userID,
		Email:    email,
		FullName: fullName,
	}); err == nil {
		if _, err := s.Queue.Enqueue(task, opts...); err != nil {
			logger.Warn("Submit: failed to enqueue welcome email", zap.Error(err))
		}
	}

	// 5. Checkout staging. The role was validated at the profile step, so a
	// missing mapping is a programming error.
	selection, err := models.PlanForRole(session.Role)
	if err != nil {
		return nil, nil, err
	}

	staged := true
	if err := s.Staging.Set(session.ID, StageCheckoutPlan, selection.PlanID); err != nil {
		staged = false
		logger.Error("Submit: failed to stage checkout plan", zap.Error(err))
	}
	if err := s.Staging.Set(session.ID, StageCheckoutPrice, selection.PriceID); err != nil {
		staged = false
		logger.Error("Submit: failed to stage checkout price", zap.Error(err))
	}

	// 6. Cleanup. Gated on staging so recovery data is never wiped before
	// the hand-off state exists. The fallback role key deliberately
	// survives; the profile-apply task removes it after a confirmed write.
	if staged {
		_ = s.Sessions.Delete(session.ID)
	} else {
		session.SubmitInFlight = false
		if err := s.Sessions.Save(session); err != nil {
			logger.Error("Submit: failed to release session after staging failure", zap.Error(err))
		}
	}

	// 7. Hand-off. Unconditional once reached.
	return nil, &SubmissionResult{
		UserID:        userID,
		Selection:     selection,
		CheckoutRoute: s.CheckoutRoute,
	}, nil
}

func (s *DefaultOnboardingService) enqueueProfileApply(payload models.ProfileApplyPayload) {
	task, opts, err := tasks.NewProfileApplyTask(payload)
	if err != nil {
		utils.GetLogger().Error("Submit: failed to build profile apply task", zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("Submit: failed to enqueue profile apply task",
			zap.String("userID", payload.UserID), zap.Error(err))
	}
}

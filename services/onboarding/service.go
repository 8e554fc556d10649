package onboarding

import (
	"time"

	"voltpath/models"
	"voltpath/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Start creates a fresh session at the account step. The offer code, when
// present, is captured exactly once and staged for the checkout page.
func (s *DefaultOnboardingService) Start(offerCode string) (*models.OnboardingSession, string, error) {
	session := &models.OnboardingSession{
		ID:        uuid.New().String(),
		Step:      models.StepAccount,
		OfferCode: offerCode,
		CreatedAt: time.Now(),
	}

	if offerCode != "" {
		if err := s.Staging.Set(session.ID, StageOfferCode, offerCode); err != nil {
			// Non-fatal: the code is also carried on the session itself.
			utils.GetLogger().Warn("Start: failed to stage offer code", zap.String("sessionID", session.ID), zap.Error(err))
		}
	}

	if err := s.Sessions.Save(session); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateSessionToken(session.ID, SessionTTL)
	if err != nil {
		utils.GetLogger().Error("Start: failed to sign session token", zap.Error(err))
		return nil, "", err
	}

	return session, token, nil
}

// GetSession returns the current session state.
func (s *DefaultOnboardingService) GetSession(sessionID string) (*models.OnboardingSession, error) {
	return s.Sessions.Get(sessionID)
}

// Back moves exactly one step backward. Back-navigation is never validated
// and always clears the step error.
func (s *DefaultOnboardingService) Back(sessionID string) (*models.OnboardingSession, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.SubmitInFlight {
		return nil, ErrSubmissionInFlight
	}

	session.Error = ""
	switch session.Step {
	case models.StepProfile:
		session.Step = models.StepAccount
	case models.StepConsent:
		session.Step = models.StepProfile
	case models.StepAccount:
		// Already at the first step.
	}

	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitProfile records the role selection. The transition is blocked until
// exactly one selectable role is chosen; no other validation applies.
func (s *DefaultOnboardingService) SubmitProfile(sessionID string, role models.Role) (*models.OnboardingSession, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepProfile {
		return nil, ErrInvalidStep
	}

	session.Error = ""
	if role == "" || !role.IsSelectable() {
		session.Error = MsgSelectRole
		if err := s.Sessions.Save(session); err != nil {
			return nil, err
		}
		return session, nil
	}

	session.Role = role
	session.Step = models.StepConsent
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

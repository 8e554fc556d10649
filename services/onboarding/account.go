package onboarding

import (
	profileRepo "voltpath/database/repository/profile"
	"voltpath/models"
	"voltpath/utils"

	"go.uber.org/zap"
)

// SubmitAccount validates the account step and runs the advisory
// duplicate-email pre-check before advancing to the profile step.
//
// The pre-check fails open: when the lookup itself errors the flow proceeds,
// because the auth provider authoritatively rejects true duplicates at
// account creation. Only a confirmed match blocks the transition.
func (s *DefaultOnboardingService) SubmitAccount(sessionID string, account models.AccountDetails) (*models.OnboardingSession, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepAccount {
		return nil, ErrInvalidStep
	}
	if session.SubmitInFlight {
		return nil, ErrSubmissionInFlight
	}

	session.Error = ""

	validation := ValidateAccount(account)
	if !validation.Valid {
		session.Error = validation.Message
		if err := s.Sessions.Save(session); err != nil {
			return nil, err
		}
		return session, nil
	}

	// One pending collaborator call per session at a time.
	session.SubmitInFlight = true
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}

	existing, lookupErr := s.Profiles.FindByEmail(profileRepo.NormalizeEmail(account.Email))
	session.SubmitInFlight = false

	if lookupErr != nil {
		utils.GetLogger().Warn("SubmitAccount: duplicate pre-check unavailable, proceeding",
			zap.String("sessionID", session.ID), zap.Error(lookupErr))
	} else if existing != nil {
		session.Error = MsgDuplicateAccount
		if err := s.Sessions.Save(session); err != nil {
			return nil, err
		}
		return session, nil
	}

	details := account
	session.Account = &details
	session.Step = models.StepProfile
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

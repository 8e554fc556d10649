package onboarding

import (
	"context"
	"errors"
	"os"
	"testing"

	"voltpath/config"
	"voltpath/models"
	"voltpath/services/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "test-secret"
	os.Exit(m.Run())
}

type serviceFixture struct {
	svc      *DefaultOnboardingService
	sessions *memSessionStore
	staging  *memStagingStore
	profiles *fakeProfileRepo
	accounts *fakeAccountProvider
	queue    *fakeEnqueuer
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		sessions: newMemSessionStore(),
		staging:  newMemStagingStore(),
		profiles: newFakeProfileRepo(),
		accounts: &fakeAccountProvider{uid: "user-123"},
		queue:    &fakeEnqueuer{},
	}
	f.svc = &DefaultOnboardingService{
		Profiles:      f.profiles,
		Accounts:      f.accounts,
		Sessions:      f.sessions,
		Staging:       f.staging,
		Queue:         f.queue,
		CheckoutRoute: "/checkout",
	}
	return f
}

var validAccount = models.AccountDetails{
	FullName:        "Jane Doe",
	Email:           "jane@example.com",
	Password:        "Abcd1234",
	ConfirmPassword: "Abcd1234",
}

// startAt drives a fresh session to the requested step.
func (f *serviceFixture) startAt(t *testing.T, step models.OnboardingStep) *models.OnboardingSession {
	t.Helper()

	session, _, err := f.svc.Start("")
	require.NoError(t, err)
	if step == models.StepAccount {
		return session
	}

	session, err = f.svc.SubmitAccount(session.ID, validAccount)
	require.NoError(t, err)
	require.Empty(t, session.Error)
	if step == models.StepProfile {
		return session
	}

	session, err = f.svc.SubmitProfile(session.ID, models.RoleApprentice)
	require.NoError(t, err)
	require.Empty(t, session.Error)
	return session
}

func TestStartCreatesSessionAtAccountStep(t *testing.T) {
	f := newServiceFixture()

	session, token, err := f.svc.Start("SPARK20")
	require.NoError(t, err)

	assert.Equal(t, models.StepAccount, session.Step)
	assert.Equal(t, "SPARK20", session.OfferCode)
	assert.NotEmpty(t, token)

	staged, err := f.staging.Get(session.ID, StageOfferCode)
	require.NoError(t, err)
	assert.Equal(t, "SPARK20", staged)
}

func TestStartWithoutOfferCodeStagesNothing(t *testing.T) {
	f := newServiceFixture()

	session, _, err := f.svc.Start("")
	require.NoError(t, err)

	staged, err := f.staging.Get(session.ID, StageOfferCode)
	require.NoError(t, err)
	assert.Empty(t, staged)
}

func TestSubmitAccountAdvancesToProfile(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepAccount)

	session, err := f.svc.SubmitAccount(session.ID, validAccount)
	require.NoError(t, err)

	assert.Equal(t, models.StepProfile, session.Step)
	assert.Empty(t, session.Error)
	require.NotNil(t, session.Account)
	assert.Equal(t, "jane@example.com", session.Account.Email)
	assert.False(t, session.SubmitInFlight)
}

func TestSubmitAccountBlocksDuplicateEmail(t *testing.T) {
	f := newServiceFixture()
	f.profiles.byEmail["jane@example.com"] = &models.Profile{ID: "existing", Email: "jane@example.com"}
	session := f.startAt(t, models.StepAccount)

	session, err := f.svc.SubmitAccount(session.ID, validAccount)
	require.NoError(t, err)

	assert.Equal(t, models.StepAccount, session.Step)
	assert.Equal(t, MsgDuplicateAccount, session.Error)
	assert.Nil(t, session.Account)
}

func TestSubmitAccountNormalizesEmailForPreCheck(t *testing.T) {
	f := newServiceFixture()
	f.profiles.byEmail["jane@example.com"] = &models.Profile{ID: "existing", Email: "jane@example.com"}
	session := f.startAt(t, models.StepAccount)

	acct := validAccount
	acct.Email = "  Jane@Example.COM "
	acct.ConfirmPassword = acct.Password

	session, err := f.svc.SubmitAccount(session.ID, acct)
	require.NoError(t, err)
	assert.Equal(t, MsgDuplicateAccount, session.Error)
}

func TestSubmitAccountFailsOpenWhenPreCheckErrors(t *testing.T) {
	f := newServiceFixture()
	f.profiles.findErr = errors.New("profile store unreachable")
	session := f.startAt(t, models.StepAccount)

	session, err := f.svc.SubmitAccount(session.ID, validAccount)
	require.NoError(t, err)

	assert.Equal(t, models.StepProfile, session.Step)
	assert.Empty(t, session.Error)
}

func TestSubmitAccountValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.AccountDetails)
		wantMsg string
	}{
		{"missing field", func(a *models.AccountDetails) { a.FullName = "" }, MsgFillAllFields},
		{"bad email", func(a *models.AccountDetails) { a.Email = "janeexample.com" }, MsgInvalidEmail},
		{"weak password", func(a *models.AccountDetails) {
			a.Password = "abcdefgh"
			a.ConfirmPassword = "abcdefgh"
		}, MsgPasswordRequirements},
		{"mismatch", func(a *models.AccountDetails) { a.ConfirmPassword = "Different1" }, MsgPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			session := f.startAt(t, models.StepAccount)

			acct := validAccount
			tt.mutate(&acct)

			session, err := f.svc.SubmitAccount(session.ID, acct)
			require.NoError(t, err)
			assert.Equal(t, models.StepAccount, session.Step)
			assert.Equal(t, tt.wantMsg, session.Error)
		})
	}
}

func TestSubmitAccountDeterministicForSameInput(t *testing.T) {
	// Same step, same form state, same pre-check result: same outcome.
	for i := 0; i < 2; i++ {
		f := newServiceFixture()
		session := f.startAt(t, models.StepAccount)

		session, err := f.svc.SubmitAccount(session.ID, validAccount)
		require.NoError(t, err)
		assert.Equal(t, models.StepProfile, session.Step)
		assert.Empty(t, session.Error)
	}
}

func TestSubmitProfileRequiresRole(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepProfile)

	session, err := f.svc.SubmitProfile(session.ID, "")
	require.NoError(t, err)

	assert.Equal(t, models.StepProfile, session.Step)
	assert.Equal(t, MsgSelectRole, session.Error)
}

func TestSubmitProfileRejectsEmployer(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepProfile)

	session, err := f.svc.SubmitProfile(session.ID, models.RoleEmployer)
	require.NoError(t, err)

	assert.Equal(t, models.StepProfile, session.Step)
	assert.Equal(t, MsgSelectRole, session.Error)
}

func TestSubmitProfileAdvancesToConsent(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepProfile)

	session, err := f.svc.SubmitProfile(session.ID, models.RoleElectrician)
	require.NoError(t, err)

	assert.Equal(t, models.StepConsent, session.Step)
	assert.Equal(t, models.RoleElectrician, session.Role)
	assert.Empty(t, session.Error)
}

func TestSubmitProfileOnWrongStep(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepAccount)

	_, err := f.svc.SubmitProfile(session.ID, models.RoleApprentice)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestBackMovesExactlyOneStep(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepConsent)

	session, err := f.svc.Back(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepProfile, session.Step)

	session, err = f.svc.Back(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAccount, session.Step)

	// Back at the first step stays put.
	session, err = f.svc.Back(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAccount, session.Step)
}

func TestBackClearsError(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepProfile)

	session, err := f.svc.SubmitProfile(session.ID, "")
	require.NoError(t, err)
	require.Equal(t, MsgSelectRole, session.Error)

	session, err = f.svc.Back(session.ID)
	require.NoError(t, err)
	assert.Empty(t, session.Error)
	assert.Equal(t, models.StepAccount, session.Step)
}

func TestGetSessionUnknownID(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.GetSession("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

var allConsents = models.ConsentDetails{
	TermsAccepted:          true,
	PrivacyAccepted:        true,
	DataProcessingAccepted: true,
	MarketingOptIn:         false,
}

func TestSubmitRequiresMandatoryConsents(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepConsent)

	consent := allConsents
	consent.DataProcessingAccepted = false

	session, result, err := f.svc.Submit(context.Background(), session.ID, consent)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, MsgAcceptRequired, session.Error)
	assert.Equal(t, models.StepConsent, session.Step)
	assert.Zero(t, f.accounts.calls)
}

func TestSubmitSuccessApprentice(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepConsent)
	sessionID := session.ID

	_, result, err := f.svc.Submit(context.Background(), sessionID, allConsents)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "user-123", result.UserID)
	assert.Equal(t, "apprentice-monthly", result.Selection.PlanID)
	assert.Equal(t, "price_apprentice_monthly", result.Selection.PriceID)
	assert.Equal(t, "/checkout", result.CheckoutRoute)

	// Account creation got the normalized email and the display name.
	assert.Equal(t, "jane@example.com", f.accounts.gotEmail)
	assert.Equal(t, "Jane Doe", f.accounts.gotName)

	// The selected role round-trips into the profile store.
	require.Len(t, f.profiles.upserted, 1)
	assert.Equal(t, models.RoleApprentice, f.profiles.upserted[0].Role)
	assert.False(t, f.profiles.upserted[0].OnboardingCompleted)

	// Consent record and welcome email were queued.
	assert.Contains(t, f.queue.typeNames(), tasks.TypeConsentRecord)
	assert.Contains(t, f.queue.typeNames(), tasks.TypeWelcomeEmail)

	// Checkout identifiers staged for the next page.
	plan, _ := f.staging.Get(sessionID, StageCheckoutPlan)
	price, _ := f.staging.Get(sessionID, StageCheckoutPrice)
	assert.Equal(t, "apprentice-monthly", plan)
	assert.Equal(t, "price_apprentice_monthly", price)

	// The session is gone: the flow is terminal.
	_, err = f.svc.GetSession(sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitSuccessElectricianPlanMapping(t *testing.T) {
	f := newServiceFixture()
	session, _, err := f.svc.Start("")
	require.NoError(t, err)
	_, err = f.svc.SubmitAccount(session.ID, validAccount)
	require.NoError(t, err)
	_, err = f.svc.SubmitProfile(session.ID, models.RoleElectrician)
	require.NoError(t, err)

	_, result, err := f.svc.Submit(context.Background(), session.ID, allConsents)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "electrician-monthly", result.Selection.PlanID)
	assert.Equal(t, "price_electrician_monthly", result.Selection.PriceID)
}

func TestSubmitAccountCreationFailureIsFatal(t *testing.T) {
	f := newServiceFixture()
	f.accounts.createErr = errors.New("email rate limit exceeded")
	session := f.startAt(t, models.StepConsent)

	session, result, err := f.svc.Submit(context.Background(), session.ID, allConsents)
	require.NoError(t, err)
	assert.Nil(t, result)

	// The collaborator error is surfaced verbatim and the session is kept so
	// the user can retry without re-entering earlier steps.
	assert.Equal(t, "email rate limit exceeded", session.Error)
	assert.Equal(t, models.StepConsent, session.Step)
	assert.False(t, session.SubmitInFlight)
	require.NotNil(t, session.Account)
	assert.Equal(t, "jane@example.com", session.Account.Email)

	// Nothing downstream ran.
	assert.Empty(t, f.profiles.upserted)
	assert.Empty(t, f.queue.tasks)
	plan, _ := f.staging.Get(session.ID, StageCheckoutPlan)
	assert.Empty(t, plan)
}

func TestSubmitProfileWriteFailureStagesFallback(t *testing.T) {
	f := newServiceFixture()
	f.profiles.upsertErr = errors.New("write timeout")
	session := f.startAt(t, models.StepConsent)
	sessionID := session.ID

	_, result, err := f.svc.Submit(context.Background(), sessionID, allConsents)
	require.NoError(t, err)
	require.NotNil(t, result)

	// The fallback role was staged and a retry task enqueued.
	fallback, _ := f.staging.Get(sessionID, StageFallbackRole)
	assert.Equal(t, string(models.RoleApprentice), fallback)
	assert.Contains(t, f.queue.typeNames(), tasks.TypeProfileApply)

	// Cleanup did not wipe the fallback: it outlives the session.
	_, err = f.svc.GetSession(sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	fallback, _ = f.staging.Get(sessionID, StageFallbackRole)
	assert.Equal(t, string(models.RoleApprentice), fallback)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepConsent)

	session.SubmitInFlight = true
	require.NoError(t, f.sessions.Save(session))

	_, _, err := f.svc.Submit(context.Background(), session.ID, allConsents)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Zero(t, f.accounts.calls)
}

func TestSubmitOnWrongStep(t *testing.T) {
	f := newServiceFixture()
	session := f.startAt(t, models.StepProfile)

	_, _, err := f.svc.Submit(context.Background(), session.ID, allConsents)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

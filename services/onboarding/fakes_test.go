package onboarding

import (
	"context"
	"encoding/json"
	"errors"

	"voltpath/models"

	"github.com/hibiken/asynq"
)

// memSessionStore is an in-memory SessionStore. Sessions are stored as
// serialized copies so the store behaves like Redis, not like shared memory.
type memSessionStore struct {
	sessions map[string][]byte
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string][]byte)}
}

func (m *memSessionStore) Save(session *models.OnboardingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.sessions[session.ID] = data
	return nil
}

func (m *memSessionStore) Get(sessionID string) (*models.OnboardingSession, error) {
	data, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.OnboardingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (m *memSessionStore) Delete(sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

// memStagingStore is an in-memory StagingStore.
type memStagingStore struct {
	values map[string]map[StagingKey]string
	setErr error
}

func newMemStagingStore() *memStagingStore {
	return &memStagingStore{values: make(map[string]map[StagingKey]string)}
}

func (m *memStagingStore) Set(sessionID string, key StagingKey, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.values[sessionID] == nil {
		m.values[sessionID] = make(map[StagingKey]string)
	}
	m.values[sessionID][key] = value
	return nil
}

func (m *memStagingStore) Get(sessionID string, key StagingKey) (string, error) {
	return m.values[sessionID][key], nil
}

func (m *memStagingStore) Remove(sessionID string, keys ...StagingKey) error {
	for _, key := range keys {
		delete(m.values[sessionID], key)
	}
	return nil
}

// fakeProfileRepo is an in-memory ProfileRepository.
type fakeProfileRepo struct {
	byEmail   map[string]*models.Profile
	findErr   error
	upsertErr error
	upserted  []*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byEmail: make(map[string]*models.Profile)}
}

func (f *fakeProfileRepo) GetByID(id string) (*models.Profile, error) {
	for _, p := range f.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("profile not found")
}

func (f *fakeProfileRepo) FindByEmail(email string) (*models.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byEmail[email], nil
}

func (f *fakeProfileRepo) Create(profile *models.Profile) error {
	f.byEmail[profile.Email] = profile
	return nil
}

func (f *fakeProfileRepo) UpsertOnboarding(profile *models.Profile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, profile)
	f.byEmail[profile.Email] = profile
	return nil
}

// fakeAccountProvider records account creation calls.
type fakeAccountProvider struct {
	uid       string
	createErr error
	calls     int
	gotEmail  string
	gotName   string
}

func (f *fakeAccountProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	f.calls++
	f.gotEmail = email
	f.gotName = displayName
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.uid, nil
}

// fakeEnqueuer records enqueued tasks.
type fakeEnqueuer struct {
	tasks      []*asynq.Task
	enqueueErr error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.enqueueErr != nil {
		return nil, f.enqueueErr
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (f *fakeEnqueuer) typeNames() []string {
	names := make([]string, 0, len(f.tasks))
	for _, task := range f.tasks {
		names = append(names, task.Type())
	}
	return names
}

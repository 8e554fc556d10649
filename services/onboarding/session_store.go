package onboarding

import (
	"context"
	"encoding/json"
	"time"

	"voltpath/models"
	"voltpath/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionTTL bounds how long an abandoned onboarding session survives.
const SessionTTL = 30 * time.Minute

// SessionStore persists in-flight onboarding sessions.
type SessionStore interface {
	Save(session *models.OnboardingSession) error
	Get(sessionID string) (*models.OnboardingSession, error)
	Delete(sessionID string) error
}

// RedisSessionStore implements SessionStore on Redis with a TTL per session.
type RedisSessionStore struct {
	Client *redis.Client
}

func sessionKey(sessionID string) string {
	return "onboarding:session:" + sessionID
}

// Save writes the session and refreshes its TTL.
func (s *RedisSessionStore) Save(session *models.OnboardingSession) error {
	ctx := context.Background()
	session.LastUpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		utils.GetLogger().Error("Failed to marshal onboarding session", zap.Error(err))
		return err
	}
	if err := s.Client.Set(ctx, sessionKey(session.ID), data, SessionTTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to save onboarding session", zap.String("sessionID", session.ID), zap.Error(err))
		return err
	}
	return nil
}

// Get retrieves a session by ID. A missing or expired session yields
// ErrSessionNotFound.
func (s *RedisSessionStore) Get(sessionID string) (*models.OnboardingSession, error) {
	ctx := context.Background()
	data, err := s.Client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		utils.GetLogger().Error("Failed to get onboarding session", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}

	var session models.OnboardingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		utils.GetLogger().Error("Failed to unmarshal onboarding session", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	return &session, nil
}

// Delete removes a session.
func (s *RedisSessionStore) Delete(sessionID string) error {
	ctx := context.Background()
	if err := s.Client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		utils.GetLogger().Error("Failed to delete onboarding session", zap.String("sessionID", sessionID), zap.Error(err))
		return err
	}
	return nil
}

package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// StagingKey is one of the closed set of keys used to hand state across the
// onboarding/checkout boundary. The set is closed to keep every read and
// write site in agreement.
type StagingKey string

const (
	// StageOfferCode is the offer code captured from the landing URL; it is
	// consumed by checkout session creation.
	StageOfferCode StagingKey = "offer_code"
	// StageCheckoutPlan and StageCheckoutPrice carry the plan selection to
	// the checkout page.
	StageCheckoutPlan  StagingKey = "checkout_plan"
	StageCheckoutPrice StagingKey = "checkout_price"
	// StageFallbackRole preserves the selected role when the profile write
	// fails; removed only after the retry task confirms the write.
	StageFallbackRole StagingKey = "fallback_role"
)

// StagingTTL keeps staged hand-off state around long enough for the checkout
// page to pick it up, and for profile-write retries to drain.
const StagingTTL = 24 * time.Hour

// StagingStore stages small string values across page loads of the signup
// funnel, keyed by onboarding session.
type StagingStore interface {
	Set(sessionID string, key StagingKey, value string) error
	// Get returns the staged value, or "" when the key is absent.
	Get(sessionID string, key StagingKey) (string, error)
	Remove(sessionID string, keys ...StagingKey) error
}

// RedisStagingStore implements StagingStore on Redis.
type RedisStagingStore struct {
	Client *redis.Client
}

func stagingKey(sessionID string, key StagingKey) string {
	return fmt.Sprintf("staging:%s:%s", sessionID, key)
}

func (s *RedisStagingStore) Set(sessionID string, key StagingKey, value string) error {
	ctx := context.Background()
	return s.Client.Set(ctx, stagingKey(sessionID, key), value, StagingTTL).Err()
}

func (s *RedisStagingStore) Get(sessionID string, key StagingKey) (string, error) {
	ctx := context.Background()
	value, err := s.Client.Get(ctx, stagingKey(sessionID, key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *RedisStagingStore) Remove(sessionID string, keys ...StagingKey) error {
	ctx := context.Background()
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = stagingKey(sessionID, key)
	}
	return s.Client.Del(ctx, full...).Err()
}

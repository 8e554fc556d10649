package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voltpath/config"
	consentRepo "voltpath/database/repository/consent"
	profileRepo "voltpath/database/repository/profile"
	"voltpath/models"
	"voltpath/services/notification"
	"voltpath/services/onboarding"
	"voltpath/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitOnboardingWorker runs the async worker in background. It drains the
// best-effort side of the signup flow: welcome email, consent persistence and
// profile-write retries.
func InitOnboardingWorker(
	consents consentRepo.ConsentRepository,
	profiles profileRepo.ProfileRepository,
	dispatcher notification.Dispatcher,
	staging onboarding.StagingStore,
) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWelcomeEmail, handleWelcomeEmailTask(dispatcher))
	mux.HandleFunc(tasks.TypeConsentRecord, handleConsentRecordTask(consents))
	mux.HandleFunc(tasks.TypeProfileApply, handleProfileApplyTask(profiles, staging))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[OnboardingWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[OnboardingWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[OnboardingWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleWelcomeEmailTask sends the welcome mail. Failures are logged and
// swallowed; a missing welcome email never warrants queue churn.
func handleWelcomeEmailTask(dispatcher notification.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.WelcomeEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[WelcomeEmail] Invalid payload: %v", err)
			return nil
		}

		if err := dispatcher.SendWelcomeEmail(ctx, p); err != nil {
			log.Printf("[WelcomeEmail] Failed to send to %s: %v", p.Email, err)
		}
		return nil
	}
}

// handleConsentRecordTask persists a consent record. Errors are returned so
// asynq retries until the record lands.
func handleConsentRecordTask(consents consentRepo.ConsentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var record models.ConsentRecord
		if err := json.Unmarshal(task.Payload(), &record); err != nil {
			log.Printf("[ConsentRecord] Invalid payload: %v", err)
			return err
		}

		if err := consents.Insert(&record); err != nil {
			log.Printf("[ConsentRecord] Failed to insert record for %s: %v", record.Email, err)
			return err
		}
		return nil
	}
}

// handleProfileApplyTask retries the onboarding profile write and clears the
// staged fallback role once the write is confirmed.
func handleProfileApplyTask(profiles profileRepo.ProfileRepository, staging onboarding.StagingStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ProfileApplyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ProfileApply] Invalid payload: %v", err)
			return err
		}

		profile := &models.Profile{
			ID:                  p.UserID,
			Email:               p.Email,
			FullName:            p.FullName,
			Role:                p.Role,
			OnboardingCompleted: false,
		}
		if err := profiles.UpsertOnboarding(profile); err != nil {
			log.Printf("[ProfileApply] Write failed for user %s: %v", p.UserID, err)
			return err
		}

		// The fallback has been applied; only now may it be cleaned up.
		if err := staging.Remove(p.SessionID, onboarding.StageFallbackRole); err != nil {
			log.Printf("[ProfileApply] Failed to remove fallback role for session %s: %v", p.SessionID, err)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[OnboardingWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"caredesk/config"
	"caredesk/services/report"

	"github.com/hibiken/asynq"
)

// InitReportWorker runs the async report-delivery worker in background.
func InitReportWorker(mailer report.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
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
	mux.HandleFunc(report.TypeReportEmail, handleReportTask(mailer))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReportWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReportWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReportWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// NewTaskClient returns an asynq client for enqueueing report tasks.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
}

func handleReportTask(mailer report.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p report.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReportHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReportHandler] sending %s to %s", p.Filename, p.Recipient)

		if err := mailer.SendReport(p); err != nil {
			log.Printf("[ReportHandler] failed to send report: %v", err)
			return err
		}
		return nil
	}
}

package worker

// email_worker.go
// Processes welcome email jobs from QueueEmail. Delivery runs through the
// SMTP circuit breaker: when the relay is down, jobs fast-fail and cycle
// through the retry budget instead of blocking workers on timeouts.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Eljyoussef/POINTAGE-APP/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxEmailAttempts = 3

// Sender delivers a single email. Satisfied by infra.Mailer.
type Sender interface {
	Send(to, subject, body, attachmentPath string) error
}

// EmailWorker sends agent credentials after provisioning.
type EmailWorker struct {
	sender Sender
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewEmailWorker(sender Sender, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{sender: sender, cb: cb, rdb: rdb}
}

// Process sends one welcome email. Failures re-enqueue the job with an
// incremented attempt counter; after maxEmailAttempts the job goes to the DLQ.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	subject := "Your field agent account"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour account has been created.\n\nUsername: %s\nPassword: %s\n\nPlease change your password after first login.\n",
		payload.Username, payload.Username, payload.Password,
	)

	err := w.cb.Execute(func() error {
		return w.sender.Send(payload.ToEmail, subject, body, "")
	})
	if err == nil {
		log.Info().Str("to", payload.ToEmail).Msg("email_worker: welcome email sent")
		return
	}

	payload.Attempts++
	if payload.Attempts >= maxEmailAttempts {
		data, _ := json.Marshal(payload)
		SendToDLQ(ctx, w.rdb, QueueEmail, jobTypeWelcomeEmail, data, err.Error(), payload.Attempts)
		return
	}

	log.Warn().
		Err(err).
		Str("to", payload.ToEmail).
		Int("attempts", payload.Attempts).
		Msg("email_worker: send failed, re-enqueueing")
	if reqErr := w.requeue(ctx, payload); reqErr != nil {
		log.Error().Err(reqErr).Str("to", payload.ToEmail).Msg("email_worker: re-enqueue failed")
	}
}

func (w *EmailWorker) requeue(ctx context.Context, payload WelcomeEmailPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobTypeWelcomeEmail, Payload: data})
	if err != nil {
		return err
	}
	return w.rdb.LPush(ctx, QueueEmail, encoded).Err()
}

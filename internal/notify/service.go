package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metrics"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"
	maxTries  = 3
)

type Kind string

const (
	KindReceipt       Kind = "payment_receipt"
	KindOperatorAlert Kind = "operator_alert"
)

type Job struct {
	Kind    Kind      `json:"kind"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Notifier queues messages for asynchronous delivery.
type Notifier interface {
	PaymentReceipt(ctx context.Context, r Receipt) error
	OperatorAlert(ctx context.Context, subject, detail string) error
}

type Config struct {
	From          string
	FromName      string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
	OperatorEmail string
}

type Service struct {
	redis      *redis.Client
	cfg        Config
	send       func(job Job) error
	retryDelay time.Duration
	// pollBackoff is the first wait after the queue becomes unreachable.
	pollBackoff time.Duration
}

func New(cfg Config, rdb *redis.Client) *Service {
	s := &Service{
		redis:       rdb,
		cfg:         cfg,
		retryDelay:  5 * time.Second,
		pollBackoff: time.Second,
	}
	s.send = s.sendSMTP
	return s
}

func (s *Service) enqueue(ctx context.Context, job Job) error {
	job.Tries = 0
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordNotification(string(job.Kind), "queue_error")
		logger.Error("failed to queue notification", "kind", job.Kind, "to", job.To, "error", err)
		return err
	}

	metrics.RecordNotification(string(job.Kind), "queued")
	logger.Info("notification queued", "kind", job.Kind, "to", job.To)
	return nil
}

// Start consumes the queue until ctx is cancelled. While the queue is
// unreachable it waits with exponential backoff between polls.
func (s *Service) Start(ctx context.Context) {
	logger.Info("notification worker started")

	poll := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(s.pollBackoff),
		backoff.WithMaxInterval(30*time.Second),
		backoff.WithMaxElapsedTime(0),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		default:
		}

		err := s.processNext(ctx)
		if err == nil {
			poll.Reset()
			continue
		}
		if ctx.Err() != nil {
			continue
		}

		delay := poll.NextBackOff()
		logger.Error("notification queue unavailable", "error", err, "retry_in", delay)
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}
}

// processNext handles at most one queued job. It returns an error only when
// the queue itself could not be read.
func (s *Service) processNext(ctx context.Context) error {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad notification payload", "error", err)
		return nil
	}

	job.Tries++
	if err := s.send(job); err != nil {
		logger.Error("failed to send notification", "kind", job.Kind, "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			s.requeue(ctx, job)
		} else {
			s.saveFailed(ctx, job, err)
		}
		return nil
	}

	metrics.RecordNotification(string(job.Kind), "sent")
	logger.Info("notification sent", "kind", job.Kind, "to", job.To)
	return nil
}

func (s *Service) requeue(ctx context.Context, job Job) {
	if s.retryDelay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(s.retryDelay):
		}
	}

	data, _ := json.Marshal(job)
	if err := s.redis.LPush(context.WithoutCancel(ctx), queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to requeue notification", "to", job.To, "error", err)
		return
	}
	metrics.RecordNotification(string(job.Kind), "retried")
}

func (s *Service) sendSMTP(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" && s.cfg.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	return smtp.SendMail(addr, auth, s.cfg.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(ctx context.Context, job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.WithoutCancel(ctx), failedKey, string(data))

	metrics.RecordNotification(string(job.Kind), "failed")
	logger.Error("notification moved to failed queue", "kind", job.Kind, "to", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

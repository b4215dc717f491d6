// Package scheduler runs background work on asynq: affidavit rendering and
// periodic job status reconciliation.
package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"serveportal_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	affidavitMaxRetry = 5
	affidavitTimeout  = 2 * time.Minute
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return newClient(opt, cfg.GetAsynqQueueName()), nil
}

func newClient(opt asynq.RedisConnOpt, queue string) *Client {
	if queue == "" {
		queue = "default"
	}
	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueAffidavitGeneration queues rendering of one affidavit. The task id
// is the affidavit id, so a second enqueue while the first is pending is a no-op.
func (c *Client) EnqueueAffidavitGeneration(ctx context.Context, tenantID, affidavitID uuid.UUID) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not configured")
	}

	task, err := NewGenerateAffidavitTask(GenerateAffidavitPayload{
		AffidavitID: affidavitID.String(),
		TenantID:    tenantID.String(),
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(affidavitTaskID(affidavitID)),
		asynq.MaxRetry(affidavitMaxRetry),
		asynq.Timeout(affidavitTimeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// EnqueueReconcile queues a reconciliation sweep. unique collapses duplicate
// sweeps enqueued by several dispatchers within the window.
func (c *Client) EnqueueReconcile(ctx context.Context, tenantID *uuid.UUID, unique time.Duration) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not configured")
	}

	payload := ReconcileJobsPayload{}
	if tenantID != nil {
		payload.TenantID = tenantID.String()
	}
	task, err := NewReconcileJobsTask(payload)
	if err != nil {
		return err
	}

	opts := []asynq.Option{asynq.Queue(c.queue), asynq.MaxRetry(1)}
	if unique > 0 {
		opts = append(opts, asynq.Unique(unique))
	}
	_, err = c.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func affidavitTaskID(affidavitID uuid.UUID) string {
	return "affidavit:" + affidavitID.String()
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}

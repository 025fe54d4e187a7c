// Package dispatch delivers received leads to external systems: the CRM
// and the automation webhook. Delivery runs through an asynq queue when
// Redis is configured, or inline in-process otherwise.
package dispatch

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hampstead_backend/platform/config"
)

const maxDeliveryRetries = 5

// Enqueuer hands lead deliveries to the background queue.
type Enqueuer interface {
	EnqueueLeadDelivery(ctx context.Context, payload LeadDeliveryPayload) error
}

// Client enqueues delivery tasks on Redis via asynq.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates the queue client. Errors when Redis is not configured.
func NewClient(cfg config.DeliveryConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetDeliveryQueue()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

// Close releases the underlying Redis connections.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueLeadDelivery schedules a lead for background delivery.
func (c *Client) EnqueueLeadDelivery(ctx context.Context, payload LeadDeliveryPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewLeadDeliveryTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(maxDeliveryRetries))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		tlsConfig = opt.TLSConfig.Clone()
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}

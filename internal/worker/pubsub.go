package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/spots"
)

// Job types accepted on the subscription.
const (
	JobSpotRefresh = "spot_refresh"
	JobHealthCheck = "health_check"
)

// PubSubHandler handles Pub/Sub messages for the worker.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	dispatcher       *Dispatcher
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	RefreshJob       *RefreshJob
	Logger           zerolog.Logger
}

// RefreshMessage is the body of a job message.
type RefreshMessage struct {
	JobType string `json:"job_type"`

	// SpotIDs limits a spot_refresh to the named spots.
	SpotIDs []string `json:"spot_ids,omitempty"`
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		dispatcher:       NewDispatcher(cfg.RefreshJob, cfg.Logger),
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages. It blocks until ctx is done.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		logger := h.logger.With().
			Str("message_id", msg.ID).
			Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
			Logger()
		logger.Debug().Msg("received pubsub message")

		if h.dispatcher.Handle(ctx, msg.Data) {
			msg.Ack()
			return
		}
		msg.Nack()
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

// Dispatcher decodes job messages and runs them. It is split from the
// Pub/Sub plumbing so it can be driven without a subscription.
type Dispatcher struct {
	job    *RefreshJob
	logger zerolog.Logger
}

// NewDispatcher creates a Dispatcher over job.
func NewDispatcher(job *RefreshJob, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{job: job, logger: logger}
}

// Handle runs the job in data and reports whether the message should be
// acked. Malformed messages are nacked; unknown job types are acked so
// they are not redelivered.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) bool {
	startTime := time.Now()

	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		d.logger.Error().Err(err).Msg("failed to parse message")
		return false
	}

	var err error
	switch msg.JobType {
	case JobSpotRefresh:
		err = d.spotRefresh(ctx, msg)
	case JobHealthCheck:
		err = d.healthCheck(ctx)
	default:
		d.logger.Warn().Str("job_type", msg.JobType).Msg("unknown job type")
		return true
	}

	if err != nil {
		d.logger.Error().Err(err).Str("job_type", msg.JobType).Msg("job failed")
		return false
	}

	d.logger.Info().
		Str("job_type", msg.JobType).
		Dur("duration", time.Since(startTime)).
		Msg("job completed successfully")
	return true
}

func (d *Dispatcher) spotRefresh(ctx context.Context, msg RefreshMessage) error {
	targets := d.job.config.Spots
	if len(msg.SpotIDs) > 0 {
		targets = make([]spots.Spot, 0, len(msg.SpotIDs))
		for _, id := range msg.SpotIDs {
			s, err := spots.Get(id)
			if err != nil {
				d.logger.Warn().Str("spot", id).Msg("skipping unknown spot")
				continue
			}
			targets = append(targets, s)
		}
		if len(targets) == 0 {
			return nil
		}
	}

	result := d.job.run(ctx, TriggerPubSub, targets)

	if err := d.job.RefreshTides(ctx); err != nil {
		d.logger.Warn().Err(err).Msg("tide refresh failed")
	}

	// Redeliver only when most spots failed.
	if result.Failed > result.Successful {
		return fmt.Errorf("too many refresh failures: %d/%d", result.Failed, result.TotalSpots)
	}
	return nil
}

// healthCheck scores the default spot to verify provider connectivity.
func (d *Dispatcher) healthCheck(ctx context.Context) error {
	d.logger.Debug().Msg("running health check")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	scored, err := d.job.forecast.AllConditions(ctx, spots.Default().Location())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	d.logger.Debug().Int("sports", len(scored)).Msg("health check passed")
	return nil
}

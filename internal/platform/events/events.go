// Package events publishes domain events to Kafka. Publishing is
// fire-and-forget: the produce happens on franz-go's background machinery and
// failures are logged, never surfaced to the request path.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"propsearch/internal/bucket/models"
)

const (
	// TopicBucketCreated carries one event per lazily created geo-bucket.
	TopicBucketCreated = "propsearch.bucket.created"
	// TopicPropertyAssigned carries one event per successful assignment.
	TopicPropertyAssigned = "propsearch.property.assigned"
)

// BucketCreated is the payload for TopicBucketCreated.
type BucketCreated struct {
	CellID        string    `json:"cell_id"`
	CanonicalName string    `json:"canonical_name"`
	CentroidLng   float64   `json:"centroid_lng"`
	CentroidLat   float64   `json:"centroid_lat"`
	CreatedAt     time.Time `json:"created_at"`
}

// PropertyAssigned is the payload for TopicPropertyAssigned.
type PropertyAssigned struct {
	CellID     string    `json:"cell_id"`
	RawName    string    `json:"raw_name"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Kafka publishes domain events through a franz-go client. A nil *Kafka is
// returned when no brokers are configured; callers skip wiring it.
type Kafka struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewKafka connects to the given brokers. Returns nil when brokers is empty.
func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Kafka{client: client, logger: logger}, nil
}

// BucketCreated emits a bucket creation event keyed by cell ID.
func (k *Kafka) BucketCreated(ctx context.Context, bucket *models.GeoBucket) {
	k.produce(ctx, TopicBucketCreated, bucket.CellID, BucketCreated{
		CellID:        bucket.CellID,
		CanonicalName: bucket.CanonicalName,
		CentroidLng:   bucket.Centroid[0],
		CentroidLat:   bucket.Centroid[1],
		CreatedAt:     bucket.CreatedAt,
	})
}

// PropertyAssigned emits an assignment event keyed by cell ID, so consumers
// see per-bucket ordering.
func (k *Kafka) PropertyAssigned(ctx context.Context, cellID, rawName string) {
	k.produce(ctx, TopicPropertyAssigned, cellID, PropertyAssigned{
		CellID:     cellID,
		RawName:    rawName,
		AssignedAt: time.Now(),
	})
}

func (k *Kafka) produce(ctx context.Context, topic, key string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		k.logger.ErrorContext(ctx, "encode event", "topic", topic, "error", err)
		return
	}
	record := &kgo.Record{Topic: topic, Key: []byte(key), Value: value}
	k.client.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			k.logger.WarnContext(ctx, "event publish failed",
				"topic", topic, "key", key, "error", err)
		}
	})
}

// Close flushes buffered records and releases the client.
func (k *Kafka) Close() {
	if k == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := k.client.Flush(ctx); err != nil {
		k.logger.Warn("flush pending events", "error", err)
	}
	k.client.Close()
}

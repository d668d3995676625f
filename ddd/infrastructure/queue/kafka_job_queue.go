package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/vo"
	"videoflix-service/pkg/kafka"
)

// KafkaJobQueue publishes processing jobs to the media jobs topic. Keying
// by video id keeps one video's jobs on one partition, so a consumer sees
// them in dispatch order.
type KafkaJobQueue struct {
	client *kafka.Client
	topic  string
}

var _ gateway.JobQueue = (*KafkaJobQueue)(nil)

func NewKafkaJobQueue(client *kafka.Client, topic string) *KafkaJobQueue {
	return &KafkaJobQueue{client: client, topic: topic}
}

func (q *KafkaJobQueue) Dispatch(ctx context.Context, job vo.ProcessingJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	key := []byte(strconv.FormatInt(job.VideoID, 10))
	if err := q.client.Produce(ctx, q.topic, key, payload); err != nil {
		return fmt.Errorf("dispatch %s job for video %d: %w", job.Kind, job.VideoID, err)
	}
	return nil
}

package component

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"videoflix-service/ddd/domain/vo"
	"videoflix-service/ddd/infrastructure/queue"
	"videoflix-service/pkg/config"
	"videoflix-service/pkg/kafka"
	"videoflix-service/pkg/logger"
)

// MediaJobConsumer reads processing jobs off the media jobs topic and feeds
// them into the in-process queue. Malformed or unknown messages are logged
// and skipped; the reader never stops on bad input.
type MediaJobConsumer struct {
	client *kafka.Client
	cfg    config.KafkaConfig
	jobs   *queue.MemoryJobQueue

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMediaJobConsumer(client *kafka.Client, cfg config.KafkaConfig, jobs *queue.MemoryJobQueue) *MediaJobConsumer {
	return &MediaJobConsumer{client: client, cfg: cfg, jobs: jobs}
}

// Start begins consuming in a background goroutine.
func (c *MediaJobConsumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go c.consumeLoop(ctx)
	logger.Infof("Media job consumer started topic=%s group=%s", c.cfg.Topics.MediaJobs, c.cfg.GroupID)
}

// Stop cancels the consume loop and waits for it to exit.
func (c *MediaJobConsumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	logger.Infof("Media job consumer stopped")
}

func (c *MediaJobConsumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	reader := c.client.Reader(c.cfg.Topics.MediaJobs, c.cfg.GroupID)
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			logger.Warnf("read media job message: %v", err)
			continue
		}

		var job vo.ProcessingJob
		if err := json.Unmarshal(msg.Value, &job); err != nil {
			logger.Warnf("malformed media job message offset=%d: %v", msg.Offset, err)
			continue
		}
		if !job.Kind.IsValid() || job.VideoID <= 0 {
			logger.Warnf("invalid media job kind=%q video_id=%d offset=%d, skipping", job.Kind, job.VideoID, msg.Offset)
			continue
		}

		if err := c.jobs.Enqueue(ctx, job); err != nil {
			logger.Warnf("enqueue %s job for video %d: %v", job.Kind, job.VideoID, err)
			if errors.Is(err, queue.ErrQueueClosed) {
				return
			}
		}
	}
}

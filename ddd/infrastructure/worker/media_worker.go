package worker

import (
	"context"
	"sync"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/service"
	"videoflix-service/ddd/domain/vo"
	"videoflix-service/ddd/infrastructure/queue"
	"videoflix-service/pkg/logger"
)

// MediaWorker drains the in-process queue with a fixed pool of goroutines.
// Each delivered job is claimed before it runs; losing the claim means
// another worker already holds this job and the delivery is dropped.
type MediaWorker struct {
	jobs      *queue.MemoryJobQueue
	claims    gateway.JobClaims // optional, nil disables claiming
	transcode *service.TranscodeService
	extract   *service.ExtractService

	concurrency int
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewMediaWorker(
	jobs *queue.MemoryJobQueue,
	claims gateway.JobClaims,
	transcode *service.TranscodeService,
	extract *service.ExtractService,
	concurrency int,
) *MediaWorker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &MediaWorker{
		jobs:        jobs,
		claims:      claims,
		transcode:   transcode,
		extract:     extract,
		concurrency: concurrency,
	}
}

// Start launches the worker goroutines.
func (w *MediaWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
	logger.Infof("Media worker started concurrency=%d", w.concurrency)
}

// Stop cancels the workers and waits for in-flight jobs to finish.
func (w *MediaWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	logger.Infof("Media worker stopped")
}

func (w *MediaWorker) workerLoop(ctx context.Context, id int) {
	defer w.wg.Done()
	for {
		job, ok := w.jobs.Dequeue(ctx)
		if !ok {
			logger.Debugf("worker %d exiting", id)
			return
		}
		w.process(ctx, job)
	}
}

func (w *MediaWorker) process(ctx context.Context, job vo.ProcessingJob) {
	if w.claims != nil {
		acquired, err := w.claims.TryClaim(ctx, job)
		if err != nil {
			logger.Warnf("claim %s job for video %d failed, running unclaimed: %v", job.Kind, job.VideoID, err)
		} else if !acquired {
			logger.Infof("%s job for video %d already claimed elsewhere, dropping", job.Kind, job.VideoID)
			return
		}
	}

	var runErr error
	switch job.Kind {
	case vo.JobKindTranscode:
		runErr = w.transcode.Run(ctx, job.VideoID)
	case vo.JobKindThumbnail:
		runErr = w.extract.RunThumbnail(ctx, job.VideoID)
	case vo.JobKindPreview:
		runErr = w.extract.RunPreview(ctx, job.VideoID)
	default:
		logger.Warnf("unknown job kind %q for video %d, dropping", job.Kind, job.VideoID)
		return
	}

	if runErr != nil {
		logger.Errorf("%s job for video %d failed: %v", job.Kind, job.VideoID, runErr)
		// Free the claim so a re-delivery can retry before the TTL.
		if w.claims != nil {
			if err := w.claims.Release(ctx, job); err != nil {
				logger.Warnf("release claim for %s job video %d failed: %v", job.Kind, job.VideoID, err)
			}
		}
	}
}

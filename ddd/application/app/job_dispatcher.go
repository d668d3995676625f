package app

import (
	"context"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/vo"
	"videoflix-service/pkg/logger"
)

// JobDispatcher fans out the independent processing jobs for a new video.
// Dispatch is best-effort: a failed publish is logged and the remaining
// kinds are still dispatched, since every job re-reads record state and an
// operator can re-dispatch later.
type JobDispatcher struct {
	queue gateway.JobQueue
}

func NewJobDispatcher(queue gateway.JobQueue) *JobDispatcher {
	return &JobDispatcher{queue: queue}
}

// DispatchProcessingJobs enqueues one job of each kind for the video.
func (d *JobDispatcher) DispatchProcessingJobs(ctx context.Context, videoID int64) {
	if d.queue == nil {
		logger.Warnf("no job queue configured, video %d will not be processed", videoID)
		return
	}
	for _, kind := range vo.AllJobKinds() {
		job := vo.ProcessingJob{Kind: kind, VideoID: videoID}
		if err := d.queue.Dispatch(ctx, job); err != nil {
			logger.Errorf("dispatch %s job for video %d: %v", kind, videoID, err)
			continue
		}
		logger.Infof("dispatched %s job for video %d", kind, videoID)
	}
}

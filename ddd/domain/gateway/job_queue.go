package gateway

import (
	"context"

	"videoflix-service/ddd/domain/vo"
)

// JobQueue is the background job queue collaborator. Dispatch is
// fire-and-forget: the caller never waits for or tracks job completion.
type JobQueue interface {
	Dispatch(ctx context.Context, job vo.ProcessingJob) error
}

// JobClaims guards against concurrent re-delivery of the same job. A held
// claim expires on its own; Release is only called after a failed run so
// the queue's re-delivery can retry.
type JobClaims interface {
	TryClaim(ctx context.Context, job vo.ProcessingJob) (bool, error)
	Release(ctx context.Context, job vo.ProcessingJob) error
}

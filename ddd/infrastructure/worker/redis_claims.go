package worker

import (
	"context"
	"fmt"
	"time"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/vo"
	"videoflix-service/pkg/redisclient"
)

// RedisJobClaims implements gateway.JobClaims with SETNX claim keys. A key
// expires on its own so a crashed worker cannot keep a job locked forever.
type RedisJobClaims struct {
	client *redisclient.Client
	ttl    time.Duration
}

var _ gateway.JobClaims = (*RedisJobClaims)(nil)

func NewRedisJobClaims(client *redisclient.Client, ttl time.Duration) *RedisJobClaims {
	return &RedisJobClaims{client: client, ttl: ttl}
}

func claimKey(job vo.ProcessingJob) string {
	return fmt.Sprintf("videoflix:job:%s:%d", job.Kind, job.VideoID)
}

// TryClaim returns true when this process acquired the claim.
func (c *RedisJobClaims) TryClaim(ctx context.Context, job vo.ProcessingJob) (bool, error) {
	return c.client.Raw().SetNX(ctx, claimKey(job), "1", c.ttl).Result()
}

// Release frees the claim early so a re-delivered job can retry.
func (c *RedisJobClaims) Release(ctx context.Context, job vo.ProcessingJob) error {
	return c.client.Raw().Del(ctx, claimKey(job)).Err()
}

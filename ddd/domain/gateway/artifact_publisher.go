package gateway

import "context"

// ArtifactPublisher mirrors a directory of derived artifacts to remote
// object storage so a CDN origin can serve them. Publishing is best-effort;
// the local media root stays authoritative.
type ArtifactPublisher interface {
	PublishDir(ctx context.Context, localDir, keyPrefix string) error
}

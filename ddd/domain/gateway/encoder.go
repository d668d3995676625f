package gateway

import (
	"context"

	"videoflix-service/ddd/domain/vo"
)

// The encoder contract is a closed set of tagged invocations; each variant
// knows exactly what it produces, so no opaque argument-builder callables
// cross the process boundary.

// TierEncodeJob produces one rendition tier: scaled-and-padded segments
// plus the variant playlist referencing them.
type TierEncodeJob struct {
	InputPath      string
	Tier           vo.RenditionSpec
	PlaylistPath   string
	SegmentPattern string
}

// ThumbnailJob captures a single poster frame at a fixed offset.
type ThumbnailJob struct {
	InputPath  string
	OutputPath string
}

// PreviewJob re-encodes a short clip starting inside the source.
type PreviewJob struct {
	InputPath    string
	OutputPath   string
	StartSeconds int
	ClipSeconds  int
	TargetWidth  int
	TargetHeight int
}

// Encoder invokes the external encoder process, one invocation per job.
// Calls block until the process exits or the configured timeout fires.
type Encoder interface {
	EncodeTier(ctx context.Context, job TierEncodeJob) error
	CaptureThumbnail(ctx context.Context, job ThumbnailJob) error
	ExtractPreview(ctx context.Context, job PreviewJob) error
}

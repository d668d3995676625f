package gateway

import "context"

// MediaInfo is the probed source metadata the pipeline decides from.
type MediaInfo struct {
	DurationSeconds float64
	Width           int
	Height          int
}

// MediaProber extracts duration and pixel dimensions from a source file.
// It must not mutate any state.
type MediaProber interface {
	Probe(ctx context.Context, path string) (*MediaInfo, error)
}

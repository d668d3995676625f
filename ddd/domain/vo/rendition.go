package vo

import "fmt"

// Fixed encoding parameters shared by every tier.
const (
	SegmentDurationSeconds = 4
	KeyframeInterval       = 48
	AudioBitrate           = "128k"
	AudioSampleRate        = 48000
	RateBufferSize         = "4200k"
)

// RenditionSpec is one tier of the static resolution ladder.
type RenditionSpec struct {
	Label        string
	TargetWidth  int
	TargetHeight int
	BitrateKbps  int
}

// DefaultLadder returns the candidate tiers in ascending bitrate order. The
// master playlist preserves this order so players see ascending bandwidth.
func DefaultLadder() []RenditionSpec {
	return []RenditionSpec{
		{Label: "360p", TargetWidth: 640, TargetHeight: 360, BitrateKbps: 800},
		{Label: "480p", TargetWidth: 854, TargetHeight: 480, BitrateKbps: 1400},
		{Label: "720p", TargetWidth: 1280, TargetHeight: 720, BitrateKbps: 2800},
		{Label: "1080p", TargetWidth: 1920, TargetHeight: 1080, BitrateKbps: 5000},
	}
}

// SelectTiers filters the ladder down to the tiers the source can fill
// without upscaling: a tier qualifies iff both target dimensions fit inside
// the source. Ladder order is preserved. An empty result is a valid outcome
// for sources smaller than the lowest tier.
func SelectTiers(sourceWidth, sourceHeight int, ladder []RenditionSpec) []RenditionSpec {
	selected := make([]RenditionSpec, 0, len(ladder))
	for _, tier := range ladder {
		if tier.TargetWidth <= sourceWidth && tier.TargetHeight <= sourceHeight {
			selected = append(selected, tier)
		}
	}
	return selected
}

// BandwidthBps converts the tier bitrate to the bits-per-second value the
// master playlist advertises.
func (r RenditionSpec) BandwidthBps() int {
	return r.BitrateKbps * 1000
}

// Resolution renders the padded target box as WIDTHxHEIGHT.
func (r RenditionSpec) Resolution() string {
	return fmt.Sprintf("%dx%d", r.TargetWidth, r.TargetHeight)
}

// PlaylistFilename is the variant playlist name for this tier.
func (r RenditionSpec) PlaylistFilename() string {
	return r.Label + ".m3u8"
}

// SegmentPattern is the ffmpeg filename pattern for this tier's segments.
func (r RenditionSpec) SegmentPattern() string {
	return r.Label + "_%03d.ts"
}

// RenditionResult records one tier that actually encoded during a run.
// Failed or skipped tiers contribute none.
type RenditionResult struct {
	Label           string
	BandwidthBps    int
	Width           int
	Height          int
	VariantPlaylist string
}

// ResultFor builds the result entry for a successfully encoded tier.
func ResultFor(tier RenditionSpec) RenditionResult {
	return RenditionResult{
		Label:           tier.Label,
		BandwidthBps:    tier.BandwidthBps(),
		Width:           tier.TargetWidth,
		Height:          tier.TargetHeight,
		VariantPlaylist: tier.PlaylistFilename(),
	}
}

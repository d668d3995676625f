package vo

import (
	"reflect"
	"testing"
)

func labels(tiers []RenditionSpec) []string {
	out := make([]string, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, t.Label)
	}
	return out
}

func TestSelectTiers(t *testing.T) {
	ladder := DefaultLadder()

	tests := []struct {
		name   string
		width  int
		height int
		want   []string
	}{
		{"full hd keeps whole ladder", 1920, 1080, []string{"360p", "480p", "720p", "1080p"}},
		{"720p source stops below 1080p", 1280, 720, []string{"360p", "480p", "720p"}},
		{"360p source keeps only lowest tier", 640, 360, []string{"360p"}},
		{"tiny source selects nothing", 320, 240, nil},
		{"vertical video fits only tiers whose width fits", 1080, 1920, []string{"360p", "480p"}},
		{"4k keeps whole ladder", 3840, 2160, []string{"360p", "480p", "720p", "1080p"}},
		{"one dimension short excludes the tier", 1920, 1079, []string{"360p", "480p", "720p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(SelectTiers(tt.width, tt.height, ladder))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectTiers(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestSelectTiersDoesNotMutateLadder(t *testing.T) {
	ladder := DefaultLadder()
	before := make([]RenditionSpec, len(ladder))
	copy(before, ladder)

	SelectTiers(1920, 1080, ladder)
	SelectTiers(100, 100, ladder)

	if !reflect.DeepEqual(ladder, before) {
		t.Errorf("ladder mutated: %v != %v", ladder, before)
	}
}

func TestDefaultLadderAscendingBitrate(t *testing.T) {
	ladder := DefaultLadder()
	for i := 1; i < len(ladder); i++ {
		if ladder[i].BitrateKbps <= ladder[i-1].BitrateKbps {
			t.Errorf("tier %s bitrate %d not above %s bitrate %d",
				ladder[i].Label, ladder[i].BitrateKbps, ladder[i-1].Label, ladder[i-1].BitrateKbps)
		}
	}
}

func TestRenditionSpecDerivedValues(t *testing.T) {
	tier := RenditionSpec{Label: "720p", TargetWidth: 1280, TargetHeight: 720, BitrateKbps: 2800}

	if got := tier.BandwidthBps(); got != 2800000 {
		t.Errorf("BandwidthBps() = %d, want 2800000", got)
	}
	if got := tier.Resolution(); got != "1280x720" {
		t.Errorf("Resolution() = %q", got)
	}
	if got := tier.PlaylistFilename(); got != "720p.m3u8" {
		t.Errorf("PlaylistFilename() = %q", got)
	}
	if got := tier.SegmentPattern(); got != "720p_%03d.ts" {
		t.Errorf("SegmentPattern() = %q", got)
	}
}

func TestResultFor(t *testing.T) {
	tier := RenditionSpec{Label: "480p", TargetWidth: 854, TargetHeight: 480, BitrateKbps: 1400}
	got := ResultFor(tier)
	want := RenditionResult{
		Label:           "480p",
		BandwidthBps:    1400000,
		Width:           854,
		Height:          480,
		VariantPlaylist: "480p.m3u8",
	}
	if got != want {
		t.Errorf("ResultFor() = %+v, want %+v", got, want)
	}
}

func TestJobKindIsValid(t *testing.T) {
	for _, kind := range AllJobKinds() {
		if !kind.IsValid() {
			t.Errorf("kind %q should be valid", kind)
		}
	}
	if JobKind("resize").IsValid() {
		t.Error("unknown kind reported valid")
	}
	if JobKind("").IsValid() {
		t.Error("empty kind reported valid")
	}
}

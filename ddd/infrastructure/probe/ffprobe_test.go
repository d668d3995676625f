package probe

import (
	"errors"
	"testing"

	"videoflix-service/pkg/errno"
)

const sampleProbeJSON = `{
  "streams": [
    {"codec_type": "audio", "codec_name": "aac"},
    {"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
     "disposition": {"attached_pic": 0}}
  ],
  "format": {"duration": "123.456000", "format_name": "mov,mp4,m4a"}
}`

const coverArtProbeJSON = `{
  "streams": [
    {"codec_type": "video", "codec_name": "mjpeg", "width": 600, "height": 600,
     "disposition": {"attached_pic": 1}},
    {"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720,
     "disposition": {"attached_pic": 0}}
  ],
  "format": {"duration": "42.0"}
}`

const audioOnlyProbeJSON = `{
  "streams": [{"codec_type": "audio", "codec_name": "mp3"}],
  "format": {"duration": "180.0"}
}`

func TestParseProbeJSON(t *testing.T) {
	info, err := ParseProbeJSON([]byte(sampleProbeJSON))
	if err != nil {
		t.Fatalf("ParseProbeJSON: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.DurationSeconds != 123.456 {
		t.Errorf("duration = %v, want 123.456", info.DurationSeconds)
	}
}

func TestParseProbeJSONSkipsCoverArt(t *testing.T) {
	info, err := ParseProbeJSON([]byte(coverArtProbeJSON))
	if err != nil {
		t.Fatalf("ParseProbeJSON: %v", err)
	}
	if info.Width != 1280 || info.Height != 720 {
		t.Errorf("picked %dx%d, want the real video stream 1280x720", info.Width, info.Height)
	}
}

func TestParseProbeJSONAudioOnly(t *testing.T) {
	_, err := ParseProbeJSON([]byte(audioOnlyProbeJSON))
	if !errors.Is(err, errno.ErrProbeFailed) {
		t.Errorf("audio-only input: err = %v, want ErrProbeFailed", err)
	}
}

func TestParseProbeJSONGarbage(t *testing.T) {
	_, err := ParseProbeJSON([]byte("ffprobe exploded"))
	if !errors.Is(err, errno.ErrProbeFailed) {
		t.Errorf("garbage input: err = %v, want ErrProbeFailed", err)
	}
}

func TestParseProbeJSONBadDuration(t *testing.T) {
	bad := `{"streams":[{"codec_type":"video","width":10,"height":10}],"format":{"duration":"soon"}}`
	if _, err := ParseProbeJSON([]byte(bad)); !errors.Is(err, errno.ErrProbeFailed) {
		t.Errorf("bad duration: err = %v, want ErrProbeFailed", err)
	}
}

package executor

import "testing"

func TestScalePadFilter(t *testing.T) {
	got := scalePadFilter(1280, 720)
	want := "scale=1280:720:force_original_aspect_ratio=decrease,pad=1280:720:(ow-iw)/2:(oh-ih)/2"
	if got != want {
		t.Errorf("scalePadFilter = %q, want %q", got, want)
	}
}

func TestStderrTailKeepsLastLines(t *testing.T) {
	in := []byte("frame=1\nframe=2\nframe=3\nConversion failed!\n")
	got := stderrTail(in)
	want := "frame=2 | frame=3 | Conversion failed!"
	if got != want {
		t.Errorf("stderrTail = %q, want %q", got, want)
	}
}

func TestStderrTailShortInput(t *testing.T) {
	if got := stderrTail([]byte("boom")); got != "boom" {
		t.Errorf("stderrTail = %q", got)
	}
}

package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/vo"
	"videoflix-service/pkg/config"
	"videoflix-service/pkg/errno"
	"videoflix-service/pkg/logger"
)

// FFmpegExecutor implements gateway.Encoder by shelling out to ffmpeg.
// Every invocation is bounded by the configured timeout so a stuck encode
// cannot pin a worker.
type FFmpegExecutor struct {
	cfg config.FFmpegConfig
}

func NewFFmpegExecutor(cfg config.FFmpegConfig) *FFmpegExecutor {
	return &FFmpegExecutor{cfg: cfg}
}

// EncodeTier produces one HLS rendition: segments named by the tier's
// pattern plus the variant playlist.
func (e *FFmpegExecutor) EncodeTier(ctx context.Context, job gateway.TierEncodeJob) error {
	tier := job.Tier
	args := []string{
		"-i", job.InputPath,
		"-vf", scalePadFilter(tier.TargetWidth, tier.TargetHeight),
		"-c:a", "aac",
		"-ar", strconv.Itoa(vo.AudioSampleRate),
		"-c:v", "h264",
		"-profile:v", "main",
		"-preset", e.cfg.VideoPreset,
		"-crf", "20",
		"-sc_threshold", "0",
		"-g", strconv.Itoa(vo.KeyframeInterval),
		"-keyint_min", strconv.Itoa(vo.KeyframeInterval),
		"-b:v", fmt.Sprintf("%dk", tier.BitrateKbps),
		"-maxrate", fmt.Sprintf("%dk", tier.BitrateKbps),
		"-bufsize", vo.RateBufferSize,
		"-b:a", vo.AudioBitrate,
		"-hls_time", strconv.Itoa(vo.SegmentDurationSeconds),
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", job.SegmentPattern,
	}
	if e.cfg.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(e.cfg.Threads))
	}
	args = append(args, "-y", job.PlaylistPath)

	if err := e.run(ctx, args); err != nil {
		return fmt.Errorf("%w: tier %s: %v", errno.ErrTierEncode, tier.Label, err)
	}
	return nil
}

// CaptureThumbnail grabs a single high-quality frame at a fixed offset.
func (e *FFmpegExecutor) CaptureThumbnail(ctx context.Context, job gateway.ThumbnailJob) error {
	args := []string{
		"-ss", "00:00:05",
		"-i", job.InputPath,
		"-vframes", "1",
		"-q:v", "2",
		"-y", job.OutputPath,
	}
	return e.run(ctx, args)
}

// ExtractPreview re-encodes a short clip, boxed and padded to the target
// dimensions.
func (e *FFmpegExecutor) ExtractPreview(ctx context.Context, job gateway.PreviewJob) error {
	args := []string{
		"-ss", strconv.Itoa(job.StartSeconds),
		"-i", job.InputPath,
		"-t", strconv.Itoa(job.ClipSeconds),
		"-vf", scalePadFilter(job.TargetWidth, job.TargetHeight),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-y", job.OutputPath,
	}
	return e.run(ctx, args)
}

func (e *FFmpegExecutor) run(ctx context.Context, args []string) error {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.cfg.BinaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debugf("ffmpeg %s", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("ffmpeg timed out after %s", e.cfg.Timeout)
		}
		return fmt.Errorf("ffmpeg: %v: %s", err, stderrTail(stderr.Bytes()))
	}
	return nil
}

// scalePadFilter fits the source inside the target box without upscaling
// distortion, then pads to exactly the target dimensions.
func scalePadFilter(w, h int) string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		w, h, w, h)
}

// stderrTail keeps the last few stderr lines; ffmpeg puts the actual error
// at the end of a long progress dump.
func stderrTail(b []byte) string {
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	const keep = 3
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return string(bytes.Join(lines, []byte(" | ")))
}

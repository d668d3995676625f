package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/pkg/config"
	"videoflix-service/pkg/errno"
)

// FFProbe shells out to ffprobe for source metadata.
type FFProbe struct {
	cfg config.FFmpegConfig
}

func NewFFProbe(cfg config.FFmpegConfig) *FFProbe {
	return &FFProbe{cfg: cfg}
}

// probe JSON wire types, limited to the fields the pipeline decides from.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeStream struct {
	CodecType   string           `json:"codec_type"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Disposition probeDisposition `json:"disposition"`
}

type probeDisposition struct {
	AttachedPic int `json:"attached_pic"`
}

// Probe runs ffprobe against path and extracts duration and the dimensions
// of the first real video stream.
func (p *FFProbe) Probe(ctx context.Context, path string) (*gateway.MediaInfo, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.cfg.ProbePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: ffprobe %s: %v: %s",
			errno.ErrProbeFailed, path, err, lastLine(stderr.Bytes()))
	}

	return ParseProbeJSON(stdout.Bytes())
}

// ParseProbeJSON decodes ffprobe JSON output into MediaInfo. Cover-art
// streams carry the attached_pic disposition and are not real video.
func ParseProbeJSON(data []byte) (*gateway.MediaInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: decode ffprobe output: %v", errno.ErrProbeFailed, err)
	}

	info := &gateway.MediaInfo{}
	if out.Format.Duration != "" {
		d, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad duration %q", errno.ErrProbeFailed, out.Format.Duration)
		}
		info.DurationSeconds = d
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" || s.Disposition.AttachedPic == 1 {
			continue
		}
		info.Width = s.Width
		info.Height = s.Height
		break
	}
	if info.Width == 0 || info.Height == 0 {
		return nil, fmt.Errorf("%w: no video stream with dimensions", errno.ErrProbeFailed)
	}

	return info, nil
}

func lastLine(b []byte) string {
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}
	return string(lines[len(lines)-1])
}

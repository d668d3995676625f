package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/repo"
	"videoflix-service/pkg/errno"
	"videoflix-service/pkg/logger"
)

const (
	thumbnailOffsetSeconds = 5
	previewClipSeconds     = 20
	previewStartFraction   = 0.25
)

// ExtractService runs the thumbnail and preview jobs. Both are idempotent:
// a non-empty output directory means a prior run already produced the
// artifact and the job returns without touching anything.
type ExtractService struct {
	repo      repo.VideoRepository
	prober    gateway.MediaProber
	encoder   gateway.Encoder
	publisher gateway.ArtifactPublisher
	mediaRoot string
}

func NewExtractService(
	videoRepo repo.VideoRepository,
	prober gateway.MediaProber,
	encoder gateway.Encoder,
	publisher gateway.ArtifactPublisher,
	mediaRoot string,
) *ExtractService {
	return &ExtractService{
		repo:      videoRepo,
		prober:    prober,
		encoder:   encoder,
		publisher: publisher,
		mediaRoot: mediaRoot,
	}
}

// RunThumbnail captures a single poster frame a few seconds into the source.
func (s *ExtractService) RunThumbnail(ctx context.Context, videoID int64) error {
	video, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repo.ErrVideoNotFound) {
			logger.Warnf("thumbnail: video %d record missing, dropping job", videoID)
			return nil
		}
		return fmt.Errorf("thumbnail: load video %d: %w", videoID, err)
	}

	outDirAbs := filepath.Join(s.mediaRoot, video.ThumbnailDir())
	if dirHasEntries(outDirAbs) {
		logger.Infof("thumbnail: video %d output dir already populated, skipping", videoID)
		return nil
	}

	sourceAbs := filepath.Join(s.mediaRoot, video.SourcePath)
	if _, err := os.Stat(sourceAbs); err != nil {
		logger.Errorf("thumbnail: video %d source %s missing: %v", videoID, sourceAbs, err)
		return errno.ErrSourceMissing
	}
	if err := os.MkdirAll(outDirAbs, 0o755); err != nil {
		return fmt.Errorf("thumbnail: create dir %s: %w", outDirAbs, err)
	}

	outName := video.SourceStem() + "_thumb.jpg"
	job := gateway.ThumbnailJob{
		InputPath:  sourceAbs,
		OutputPath: filepath.Join(outDirAbs, outName),
	}
	if err := s.encoder.CaptureThumbnail(ctx, job); err != nil {
		return fmt.Errorf("thumbnail: video %d: %w", videoID, err)
	}

	thumbRel := filepath.ToSlash(filepath.Join(video.ThumbnailDir(), outName))
	if err := s.repo.UpdateThumbnail(ctx, videoID, thumbRel); err != nil {
		return fmt.Errorf("thumbnail: video %d update record: %w", videoID, err)
	}

	s.mirror(ctx, "thumbnail", videoID, outDirAbs, video.ThumbnailDir())
	logger.Infof("thumbnail: video %d done, path=%s", videoID, thumbRel)
	return nil
}

// RunPreview extracts a short clip starting a quarter of the way into the
// source, boxed to 1080p for HD sources and 720p otherwise.
func (s *ExtractService) RunPreview(ctx context.Context, videoID int64) error {
	video, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repo.ErrVideoNotFound) {
			logger.Warnf("preview: video %d record missing, dropping job", videoID)
			return nil
		}
		return fmt.Errorf("preview: load video %d: %w", videoID, err)
	}

	outDirAbs := filepath.Join(s.mediaRoot, video.PreviewDir())
	if dirHasEntries(outDirAbs) {
		logger.Infof("preview: video %d output dir already populated, skipping", videoID)
		return nil
	}

	sourceAbs := filepath.Join(s.mediaRoot, video.SourcePath)
	if _, err := os.Stat(sourceAbs); err != nil {
		logger.Errorf("preview: video %d source %s missing: %v", videoID, sourceAbs, err)
		return errno.ErrSourceMissing
	}

	info, err := s.prober.Probe(ctx, sourceAbs)
	if err != nil {
		logger.Errorf("preview: video %d probe failed: %v", videoID, err)
		return err
	}
	if err := os.MkdirAll(outDirAbs, 0o755); err != nil {
		return fmt.Errorf("preview: create dir %s: %w", outDirAbs, err)
	}

	width, height := 1280, 720
	if info.Width >= 1280 {
		width, height = 1920, 1080
	}

	outName := video.SourceStem() + "_preview.mp4"
	job := gateway.PreviewJob{
		InputPath:    sourceAbs,
		OutputPath:   filepath.Join(outDirAbs, outName),
		StartSeconds: int(info.DurationSeconds * previewStartFraction),
		ClipSeconds:  previewClipSeconds,
		TargetWidth:  width,
		TargetHeight: height,
	}
	if err := s.encoder.ExtractPreview(ctx, job); err != nil {
		return fmt.Errorf("preview: video %d: %w", videoID, err)
	}

	previewRel := filepath.ToSlash(filepath.Join(video.PreviewDir(), outName))
	if err := s.repo.UpdatePreview(ctx, videoID, previewRel); err != nil {
		return fmt.Errorf("preview: video %d update record: %w", videoID, err)
	}

	s.mirror(ctx, "preview", videoID, outDirAbs, video.PreviewDir())
	logger.Infof("preview: video %d done, path=%s", videoID, previewRel)
	return nil
}

func (s *ExtractService) mirror(ctx context.Context, job string, videoID int64, localDir, keyPrefix string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishDir(ctx, localDir, keyPrefix); err != nil {
		logger.Warnf("%s: video %d mirror to object storage failed: %v", job, videoID, err)
	}
}

// dirHasEntries reports whether dir exists and contains at least one entry.
func dirHasEntries(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}

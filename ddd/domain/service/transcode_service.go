package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"videoflix-service/ddd/domain/entity"
	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/ddd/domain/repo"
	"videoflix-service/ddd/domain/vo"
	"videoflix-service/pkg/errno"
	"videoflix-service/pkg/logger"
)

// TranscodeService runs the full transcode job for one video: probe the
// source, pick the rendition tiers it can fill, encode each tier, then
// write the master playlist and patch the record.
type TranscodeService struct {
	repo      repo.VideoRepository
	prober    gateway.MediaProber
	encoder   gateway.Encoder
	publisher gateway.ArtifactPublisher // optional, best-effort mirror
	mediaRoot string
	ladder    []vo.RenditionSpec
}

func NewTranscodeService(
	videoRepo repo.VideoRepository,
	prober gateway.MediaProber,
	encoder gateway.Encoder,
	publisher gateway.ArtifactPublisher,
	mediaRoot string,
) *TranscodeService {
	return &TranscodeService{
		repo:      videoRepo,
		prober:    prober,
		encoder:   encoder,
		publisher: publisher,
		mediaRoot: mediaRoot,
		ladder:    vo.DefaultLadder(),
	}
}

// Run executes the transcode job for videoID. Individual tier failures are
// logged and skipped; the run only fails outright when the record, the
// source file, or the probe is unusable.
func (s *TranscodeService) Run(ctx context.Context, videoID int64) error {
	video, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repo.ErrVideoNotFound) {
			logger.Warnf("transcode: video %d record missing, dropping job", videoID)
			return nil
		}
		return fmt.Errorf("transcode: load video %d: %w", videoID, err)
	}

	if video.HasPlaylist() {
		logger.Infof("transcode: video %d already has master playlist %s, skipping", videoID, *video.MasterPlaylistPath)
		return nil
	}
	if entity.IsStillImage(video.SourcePath) {
		logger.Infof("transcode: video %d source %s is a still image, skipping", videoID, video.SourcePath)
		return nil
	}

	sourceAbs := filepath.Join(s.mediaRoot, video.SourcePath)
	if _, err := os.Stat(sourceAbs); err != nil {
		logger.Errorf("transcode: video %d source %s missing: %v", videoID, sourceAbs, err)
		return errno.ErrSourceMissing
	}

	info, err := s.prober.Probe(ctx, sourceAbs)
	if err != nil {
		logger.Errorf("transcode: video %d probe failed: %v", videoID, err)
		return err
	}

	tiers := vo.SelectTiers(info.Width, info.Height, s.ladder)
	if len(tiers) == 0 {
		logger.Infof("transcode: video %d source %dx%d below lowest tier, nothing to encode", videoID, info.Width, info.Height)
		return nil
	}

	hlsDirAbs := filepath.Join(s.mediaRoot, video.HLSDir())
	if err := os.MkdirAll(hlsDirAbs, 0o755); err != nil {
		return fmt.Errorf("transcode: create hls dir %s: %w", hlsDirAbs, err)
	}

	results := make([]vo.RenditionResult, 0, len(tiers))
	for _, tier := range tiers {
		job := gateway.TierEncodeJob{
			InputPath:      sourceAbs,
			Tier:           tier,
			PlaylistPath:   filepath.Join(hlsDirAbs, tier.PlaylistFilename()),
			SegmentPattern: filepath.Join(hlsDirAbs, tier.SegmentPattern()),
		}
		if err := s.encoder.EncodeTier(ctx, job); err != nil {
			logger.Warnf("transcode: video %d tier %s failed, continuing: %v", videoID, tier.Label, err)
			continue
		}
		results = append(results, vo.ResultFor(tier))
		logger.Infof("transcode: video %d tier %s done", videoID, tier.Label)
	}

	if len(results) == 0 {
		logger.Warnf("transcode: video %d produced no tiers, record left untouched", videoID)
		return nil
	}

	if _, err := WriteMasterPlaylist(hlsDirAbs, results); err != nil {
		return fmt.Errorf("transcode: video %d: %w", videoID, err)
	}

	masterRel := filepath.ToSlash(filepath.Join(video.HLSDir(), MasterPlaylistName))
	if err := s.repo.UpdatePlaylist(ctx, videoID, masterRel, int(info.DurationSeconds)); err != nil {
		return fmt.Errorf("transcode: video %d update record: %w", videoID, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDir(ctx, hlsDirAbs, video.HLSDir()); err != nil {
			logger.Warnf("transcode: video %d mirror to object storage failed: %v", videoID, err)
		}
	}

	logger.Infof("transcode: video %d done, %d/%d tiers, master=%s", videoID, len(results), len(tiers), masterRel)
	return nil
}

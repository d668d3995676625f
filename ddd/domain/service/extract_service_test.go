package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/pkg/errno"
)

func TestThumbnailHappyPath(t *testing.T) {
	root := t.TempDir()
	video := testVideo(1)
	writeSource(t, root, video)

	repo := newFakeRepo(video)
	enc := &fakeEncoder{}
	svc := NewExtractService(repo, &fakeProber{}, enc, nil, root)

	if err := svc.RunThumbnail(context.Background(), 1); err != nil {
		t.Fatalf("RunThumbnail: %v", err)
	}

	if len(enc.thumbCalls) != 1 {
		t.Fatalf("thumbnail calls = %d", len(enc.thumbCalls))
	}
	wantOut := filepath.Join(root, "videos/Clip_u1/thumbnails/clip_thumb.jpg")
	if enc.thumbCalls[0].OutputPath != wantOut {
		t.Errorf("output = %q, want %q", enc.thumbCalls[0].OutputPath, wantOut)
	}
	if len(repo.thumbnailUpdates) != 1 || repo.thumbnailUpdates[0] != "videos/Clip_u1/thumbnails/clip_thumb.jpg" {
		t.Errorf("thumbnail updates = %v", repo.thumbnailUpdates)
	}
}

func TestThumbnailIdempotent(t *testing.T) {
	root := t.TempDir()
	video := testVideo(1)
	writeSource(t, root, video)

	outDir := filepath.Join(root, video.ThumbnailDir())
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "clip_thumb.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := newFakeRepo(video)
	enc := &fakeEncoder{}
	svc := NewExtractService(repo, &fakeProber{}, enc, nil, root)

	if err := svc.RunThumbnail(context.Background(), 1); err != nil {
		t.Fatalf("RunThumbnail: %v", err)
	}
	if len(enc.thumbCalls) != 0 {
		t.Error("encoder invoked although output dir already populated")
	}
	if len(repo.thumbnailUpdates) != 0 {
		t.Error("record updated although output dir already populated")
	}
}

func TestThumbnailMissingSource(t *testing.T) {
	root := t.TempDir()
	video := testVideo(1)

	svc := NewExtractService(newFakeRepo(video), &fakeProber{}, &fakeEncoder{}, nil, root)
	if err := svc.RunThumbnail(context.Background(), 1); !errors.Is(err, errno.ErrSourceMissing) {
		t.Errorf("RunThumbnail = %v, want ErrSourceMissing", err)
	}
}

func TestPreviewHappyPathHDSource(t *testing.T) {
	root := t.TempDir()
	video := testVideo(1)
	writeSource(t, root, video)

	repo := newFakeRepo(video)
	enc := &fakeEncoder{}
	prb := &fakeProber{info: &gateway.MediaInfo{DurationSeconds: 100, Width: 1920, Height: 1080}}
	svc := NewExtractService(repo, prb, enc, nil, root)

	if err := svc.RunPreview(context.Background(), 1); err != nil {
		t.Fatalf("RunPreview: %v", err)
	}

	if len(enc.prevCalls) != 1 {
		t.Fatalf("preview calls = %d", len(enc.prevCalls))
	}
	job := enc.prevCalls[0]
	if job.StartSeconds != 25 {
		t.Errorf("start = %d, want 25", job.StartSeconds)
	}
	if job.ClipSeconds != 20 {
		t.Errorf("clip = %d, want 20", job.ClipSeconds)
	}
	if job.TargetWidth != 1920 || job.TargetHeight != 1080 {
		t.Errorf("box = %dx%d, want 1920x1080", job.TargetWidth, job.TargetHeight)
	}
	if len(repo.previewUpdates) != 1 || repo.previewUpdates[0] != "videos/Clip_u1/preview/clip_preview.mp4" {
		t.Errorf("preview updates = %v", repo.previewUpdates)
	}
}

func TestPreviewSmallSourceGets720Box(t *testing.T) {
	root := t.TempDir()
	video := testVideo(1)
	writeSource(t, root, video)

	enc := &fakeEncoder{}
	prb := &fakeProber{info: &gateway.MediaInfo{DurationSeconds: 40, Width: 854, Height: 480}}
	svc := NewExtractService(newFakeRepo(video), prb, enc, nil, root)

	if err := svc.RunPreview(context.Background(), 1); err != nil {
		t.Fatalf("RunPreview: %v", err)
	}
	job := enc.prevCalls[0]
	if job.TargetWidth != 1280 || job.TargetHeight != 720 {
		t.Errorf("box = %dx%d, want 1280x720", job.TargetWidth, job.TargetHeight)
	}
	if job.StartSeconds != 10 {
		t.Errorf("start = %d, want 10", job.StartSeconds)
	}
}

func TestPreviewIdempotent(t *testing.T) {
	root := t.TempDir()
	video := testVideo(1)
	writeSource(t, root, video)

	outDir := filepath.Join(root, video.PreviewDir())
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "clip_preview.mp4"), []byte("mp4"), 0o644); err != nil {
		t.Fatal(err)
	}

	enc := &fakeEncoder{}
	repo := newFakeRepo(video)
	svc := NewExtractService(repo, &fakeProber{}, enc, nil, root)

	if err := svc.RunPreview(context.Background(), 1); err != nil {
		t.Fatalf("RunPreview: %v", err)
	}
	if len(enc.prevCalls) != 0 {
		t.Error("encoder invoked although output dir already populated")
	}
}

func TestExtractMissingRecordIsDropped(t *testing.T) {
	root := t.TempDir()
	svc := NewExtractService(newFakeRepo(), &fakeProber{}, &fakeEncoder{}, nil, root)

	if err := svc.RunThumbnail(context.Background(), 9); err != nil {
		t.Errorf("RunThumbnail = %v, want nil", err)
	}
	if err := svc.RunPreview(context.Background(), 9); err != nil {
		t.Errorf("RunPreview = %v, want nil", err)
	}
}

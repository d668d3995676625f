package app

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"videoflix-service/ddd/application/dto"
	"videoflix-service/ddd/domain/entity"
	"videoflix-service/ddd/domain/repo"
	"videoflix-service/pkg/errno"
)

// VideoApp handles the video record use cases behind the JSON API.
type VideoApp struct {
	repo       repo.VideoRepository
	dispatcher *JobDispatcher
}

func NewVideoApp(videoRepo repo.VideoRepository, dispatcher *JobDispatcher) *VideoApp {
	return &VideoApp{repo: videoRepo, dispatcher: dispatcher}
}

// CreateVideo registers an uploaded source file and kicks off processing.
func (a *VideoApp) CreateVideo(ctx context.Context, req *dto.CreateVideoRequest) (*dto.VideoResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errno.ErrTitleRequired
	}
	filename := filepath.Base(strings.TrimSpace(req.SourceFilename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, errno.ErrSourceRequired
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "Other"
	}
	if !entity.IsValidCategory(category) {
		return nil, errno.ErrInvalidCategory
	}

	video := &entity.VideoAsset{
		UUID:        uuid.NewString(),
		Title:       title,
		Description: req.Description,
		Category:    category,
	}
	// The source lives inside the video's own folder so every derived
	// asset stays under one tree.
	video.SourcePath = path.Join(video.StorageDir(), filename)

	if err := a.repo.Create(ctx, video); err != nil {
		return nil, err
	}

	a.dispatcher.DispatchProcessingJobs(ctx, video.ID)

	return toVideoResponse(video), nil
}

// GetVideo loads one video record.
func (a *VideoApp) GetVideo(ctx context.Context, id int64) (*dto.VideoResponse, error) {
	video, err := a.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrVideoNotFound) {
			return nil, errno.ErrNotFound
		}
		return nil, err
	}
	return toVideoResponse(video), nil
}

// ListCategories returns the fixed category set.
func (a *VideoApp) ListCategories() *dto.CategoriesResponse {
	return &dto.CategoriesResponse{Categories: entity.Categories}
}

func toVideoResponse(v *entity.VideoAsset) *dto.VideoResponse {
	resp := &dto.VideoResponse{
		ID:              v.ID,
		UUID:            v.UUID,
		Title:           v.Title,
		Description:     v.Description,
		Category:        v.Category,
		DurationSeconds: v.DurationSeconds,
		CreatedAt:       v.CreatedAt,
	}
	if v.MasterPlaylistPath != nil {
		resp.MasterPlaylistPath = *v.MasterPlaylistPath
	}
	if v.ThumbnailPath != nil {
		resp.ThumbnailPath = *v.ThumbnailPath
	}
	if v.PreviewPath != nil {
		resp.PreviewPath = *v.PreviewPath
	}
	return resp
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"videoflix-service/ddd/domain/entity"
	"videoflix-service/ddd/domain/repo"
	"videoflix-service/ddd/infrastructure/database/convertor"
	"videoflix-service/ddd/infrastructure/database/dao"
)

// VideoRepositoryImpl backs repo.VideoRepository with MySQL through gorm.
type VideoRepositoryImpl struct {
	dao *dao.VideoDAO
}

var _ repo.VideoRepository = (*VideoRepositoryImpl)(nil)

func NewVideoRepository(db *gorm.DB) *VideoRepositoryImpl {
	return &VideoRepositoryImpl{dao: dao.NewVideoDAO(db)}
}

func (r *VideoRepositoryImpl) Create(ctx context.Context, video *entity.VideoAsset) error {
	p := convertor.VideoToPO(video)
	if err := r.dao.Create(ctx, p); err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	video.ID = p.ID
	video.CreatedAt = p.CreatedAt
	return nil
}

func (r *VideoRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.VideoAsset, error) {
	p, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video %d: %w", id, err)
	}
	return convertor.VideoToEntity(p), nil
}

func (r *VideoRepositoryImpl) UpdatePlaylist(ctx context.Context, id int64, masterPath string, durationSeconds int) error {
	return r.dao.UpdateFields(ctx, id, map[string]interface{}{
		"master_playlist_path": masterPath,
		"duration_seconds":     durationSeconds,
	})
}

func (r *VideoRepositoryImpl) UpdateThumbnail(ctx context.Context, id int64, thumbnailPath string) error {
	return r.dao.UpdateFields(ctx, id, map[string]interface{}{
		"thumbnail_path": thumbnailPath,
	})
}

func (r *VideoRepositoryImpl) UpdatePreview(ctx context.Context, id int64, previewPath string) error {
	return r.dao.UpdateFields(ctx, id, map[string]interface{}{
		"preview_path": previewPath,
	})
}

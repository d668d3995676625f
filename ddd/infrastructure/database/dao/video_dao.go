package dao

import (
	"context"

	"gorm.io/gorm"

	"videoflix-service/ddd/infrastructure/database/po"
)

// VideoDAO raw gorm access for the videos table.
type VideoDAO struct {
	db *gorm.DB
}

func NewVideoDAO(db *gorm.DB) *VideoDAO {
	return &VideoDAO{db: db}
}

func (d *VideoDAO) Create(ctx context.Context, video *po.Video) error {
	return d.db.WithContext(ctx).Create(video).Error
}

func (d *VideoDAO) FindByID(ctx context.Context, id int64) (*po.Video, error) {
	var video po.Video
	if err := d.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateFields patches only the given columns so concurrent jobs writing
// different columns of the same row never clobber each other.
func (d *VideoDAO) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return d.db.WithContext(ctx).
		Model(&po.Video{}).
		Where("id = ?", id).
		Updates(fields).Error
}

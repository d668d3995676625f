package convertor

import (
	"videoflix-service/ddd/domain/entity"
	"videoflix-service/ddd/infrastructure/database/po"
)

// VideoToEntity maps a persistence object to the domain entity.
func VideoToEntity(p *po.Video) *entity.VideoAsset {
	if p == nil {
		return nil
	}
	return &entity.VideoAsset{
		ID:                 p.ID,
		UUID:               p.UUID,
		Title:              p.Title,
		Description:        p.Description,
		Category:           p.Category,
		SourcePath:         p.SourcePath,
		MasterPlaylistPath: p.MasterPlaylistPath,
		DurationSeconds:    p.DurationSeconds,
		ThumbnailPath:      p.ThumbnailPath,
		PreviewPath:        p.PreviewPath,
		CreatedAt:          p.CreatedAt,
	}
}

// VideoToPO maps the domain entity to a persistence object.
func VideoToPO(e *entity.VideoAsset) *po.Video {
	if e == nil {
		return nil
	}
	v := &po.Video{
		UUID:               e.UUID,
		Title:              e.Title,
		Description:        e.Description,
		Category:           e.Category,
		SourcePath:         e.SourcePath,
		MasterPlaylistPath: e.MasterPlaylistPath,
		DurationSeconds:    e.DurationSeconds,
		ThumbnailPath:      e.ThumbnailPath,
		PreviewPath:        e.PreviewPath,
	}
	v.ID = e.ID
	return v
}

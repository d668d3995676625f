package repo

import (
	"context"
	"errors"

	"videoflix-service/ddd/domain/entity"
)

// ErrVideoNotFound distinguishes a missing record from a transient store
// error; both abort a job, but they are logged differently.
var ErrVideoNotFound = errors.New("video record not found")

// VideoRepository is the video record store collaborator. Every update is
// field-scoped to exactly the fields one job owns, so concurrent jobs for
// the same video never conflict on a write.
type VideoRepository interface {
	Create(ctx context.Context, video *entity.VideoAsset) error
	FindByID(ctx context.Context, id int64) (*entity.VideoAsset, error)

	// UpdatePlaylist sets masterPlaylistPath and durationSeconds in one
	// update; called at most once per successful transcode run.
	UpdatePlaylist(ctx context.Context, id int64, masterPath string, durationSeconds int) error
	UpdateThumbnail(ctx context.Context, id int64, thumbnailPath string) error
	UpdatePreview(ctx context.Context, id int64, previewPath string) error
}

package dto

import "time"

// CreateVideoRequest registers an already-uploaded source file.
type CreateVideoRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	SourceFilename string `json:"source_filename" binding:"required"`
}

// VideoResponse is the public view of a video record.
type VideoResponse struct {
	ID                 int64     `json:"id"`
	UUID               string    `json:"uuid"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	DurationSeconds    int       `json:"duration_seconds"`
	MasterPlaylistPath string    `json:"master_playlist_path,omitempty"`
	ThumbnailPath      string    `json:"thumbnail_path,omitempty"`
	PreviewPath        string    `json:"preview_path,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// CategoriesResponse lists the categories a video can be filed under.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

package entity

import (
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Categories a video can be filed under.
var Categories = []string{
	"Horror", "Action", "Drama", "Comedy", "Science Fiction",
	"Documentary", "Cartoon", "Fantasy", "Other",
}

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// VideoAsset is the video record the pipeline reads and patches. All paths
// are stored relative to the configured media root. MasterPlaylistPath,
// ThumbnailPath and PreviewPath stay nil until the owning job succeeds;
// DurationSeconds stays 0 until probing succeeds.
type VideoAsset struct {
	ID          int64
	UUID        string
	Title       string
	Description string
	Category    string
	// SourcePath locates the original upload. Immutable after creation.
	SourcePath         string
	MasterPlaylistPath *string
	DurationSeconds    int
	ThumbnailPath      *string
	PreviewPath        *string
	CreatedAt          time.Time
}

// HasPlaylist reports whether a prior transcode run already produced the
// master playlist.
func (v *VideoAsset) HasPlaylist() bool {
	return v.MasterPlaylistPath != nil && *v.MasterPlaylistPath != ""
}

// StorageFolder is the immutable per-video folder name {title}_{uuid}.
// Derived-asset paths are all computed relative to it, so it must never
// change after creation.
func (v *VideoAsset) StorageFolder() string {
	return SanitizeTitle(v.Title) + "_" + v.UUID
}

// StorageDir is the video's folder relative to the media root.
func (v *VideoAsset) StorageDir() string {
	return path.Join("videos", v.StorageFolder())
}

// HLSDir holds variant playlists, segments and the master playlist.
func (v *VideoAsset) HLSDir() string {
	return path.Join(v.StorageDir(), "hls")
}

// ThumbnailDir holds the poster thumbnail.
func (v *VideoAsset) ThumbnailDir() string {
	return path.Join(v.StorageDir(), "thumbnails")
}

// PreviewDir holds the preview clip.
func (v *VideoAsset) PreviewDir() string {
	return path.Join(v.StorageDir(), "preview")
}

// SourceStem is the original filename without its extension, used to name
// derived assets ({stem}_thumb.jpg, {stem}_preview.mp4).
func (v *VideoAsset) SourceStem() string {
	base := filepath.Base(v.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SanitizeTitle makes a title safe for use in a directory name.
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "video"
	}
	return b.String()
}

// StillImageExtensions marks uploads that are image containers rather than
// videos; the transcode job skips these outright.
var StillImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".webp": true,
}

// IsStillImage reports whether the path's extension marks a still image.
func IsStillImage(p string) bool {
	return StillImageExtensions[strings.ToLower(filepath.Ext(p))]
}

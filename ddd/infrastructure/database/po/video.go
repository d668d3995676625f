package po

// Video is the persistence object for one uploaded video and its derived
// asset paths. Paths are relative to the media root; the nullable columns
// stay NULL until the owning pipeline job succeeds.
type Video struct {
	BaseModel
	UUID               string  `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null"`
	Title              string  `gorm:"column:title;type:varchar(255);not null"`
	Description        string  `gorm:"column:description;type:text"`
	Category           string  `gorm:"column:category;type:varchar(64)"`
	SourcePath         string  `gorm:"column:source_path;type:varchar(512);not null"`
	MasterPlaylistPath *string `gorm:"column:master_playlist_path;type:varchar(512)"`
	DurationSeconds    int     `gorm:"column:duration_seconds;not null;default:0"`
	ThumbnailPath      *string `gorm:"column:thumbnail_path;type:varchar(512)"`
	PreviewPath        *string `gorm:"column:preview_path;type:varchar(512)"`
}

func (Video) TableName() string {
	return "videos"
}

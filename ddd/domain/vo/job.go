package vo

// JobKind identifies one of the three independent pipeline jobs.
type JobKind string

const (
	JobKindTranscode JobKind = "transcode"
	JobKindThumbnail JobKind = "thumbnail"
	JobKindPreview   JobKind = "preview"
)

// IsValid reports whether the kind is one of the known job kinds.
func (k JobKind) IsValid() bool {
	switch k {
	case JobKindTranscode, JobKindThumbnail, JobKindPreview:
		return true
	default:
		return false
	}
}

func (k JobKind) String() string { return string(k) }

// AllJobKinds lists the jobs dispatched for every new video, in dispatch
// order. The jobs are independent; nothing orders their execution.
func AllJobKinds() []JobKind {
	return []JobKind{JobKindTranscode, JobKindThumbnail, JobKindPreview}
}

// ProcessingJob is the queue payload. It carries only the video id so a
// delivered job always re-reads current record state instead of acting on a
// stale snapshot.
type ProcessingJob struct {
	Kind    JobKind `json:"task_kind"`
	VideoID int64   `json:"video_id"`
}

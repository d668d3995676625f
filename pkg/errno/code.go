package errno

// code=0 request succeeded
// code=4xx client errors
// code=5xx server errors
// code=2xxxx pipeline errors

type Errno struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrInvalidParam = &Errno{Code: 400, Message: "Invalid parameter"}
	ErrUnauthorized = &Errno{Code: 401, Message: "Unauthorized"}
	ErrNotFound     = &Errno{Code: 404, Message: "Not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrDatabase       = &Errno{Code: 501, Message: "Database error"}

	// Pipeline errors. SourceMissing and ProbeError abort a job before any
	// encoder runs; NoTiersProduced and AlreadyPresent are valid terminal
	// outcomes, not failures.
	ErrSourceMissing   = &Errno{Code: 21001, Message: "Source file or record is missing"}
	ErrProbeFailed     = &Errno{Code: 21002, Message: "Source metadata could not be probed"}
	ErrTierEncode      = &Errno{Code: 21003, Message: "Rendition tier encode failed"}
	ErrNoTiersProduced = &Errno{Code: 21004, Message: "No rendition tier was produced"}
	ErrAlreadyPresent  = &Errno{Code: 21005, Message: "Derived asset already present"}
	ErrUnknownJobKind  = &Errno{Code: 21006, Message: "Unknown processing job kind"}

	ErrTitleRequired    = &Errno{Code: 21011, Message: "Video title is required"}
	ErrSourceRequired   = &Errno{Code: 21012, Message: "Source file path is required"}
	ErrInvalidCategory  = &Errno{Code: 21013, Message: "Invalid video category"}
	ErrPlaylistNotFound = &Errno{Code: 21021, Message: "Playlist not found"}
	ErrSegmentNotFound  = &Errno{Code: 21022, Message: "Segment not found"}
)

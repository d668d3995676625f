package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"videoflix-service/ddd/domain/entity"
	"videoflix-service/ddd/domain/repo"
	"videoflix-service/pkg/config"
	"videoflix-service/pkg/logger"
	"videoflix-service/pkg/restapi"

	"videoflix-service/pkg/errno"
)

const (
	contentTypePlaylist = "application/vnd.apple.mpegurl"
	contentTypeSegment  = "video/MP2T"
)

// StreamController serves rendition playlists and segments off the local
// media root, rewriting playlist entries into absolute service URLs.
type StreamController struct {
	repo  repo.VideoRepository
	media config.MediaConfig
}

func NewStreamController(videoRepo repo.VideoRepository, media config.MediaConfig) *StreamController {
	return &StreamController{repo: videoRepo, media: media}
}

// ServePlaylist handles GET /video/:id/:resolution/index.m3u8. The
// resolution segment picks the variant playlist, or the master playlist
// under the "master" label.
func (sc *StreamController) ServePlaylist(c *gin.Context) {
	video, ok := sc.loadVideo(c)
	if !ok {
		return
	}
	resolution := c.Param("resolution")
	if !safePathComponent(resolution) {
		restapi.Failed(c, errno.ErrPlaylistNotFound)
		return
	}

	playlistPath := filepath.Join(sc.media.Root, video.HLSDir(), resolution+".m3u8")
	data, err := os.ReadFile(playlistPath)
	if err != nil {
		logger.Warnf("playlist %s for video %d unreadable: %v", resolution, video.ID, err)
		restapi.Failed(c, errno.ErrPlaylistNotFound)
		return
	}

	rewritten := RewritePlaylist(string(data), sc.media.PublicBase, video.ID, resolution)
	c.Data(http.StatusOK, contentTypePlaylist, []byte(rewritten))
}

// ServeSegment handles GET /video/:id/:resolution/:segment. Segment files
// on disk carry the resolution prefix the playlist rewrite strips off.
func (sc *StreamController) ServeSegment(c *gin.Context) {
	video, ok := sc.loadVideo(c)
	if !ok {
		return
	}
	resolution := c.Param("resolution")
	segment := c.Param("segment")
	if !safePathComponent(resolution) || !safePathComponent(segment) {
		restapi.Failed(c, errno.ErrSegmentNotFound)
		return
	}

	segmentPath := filepath.Join(sc.media.Root, video.HLSDir(), resolution+"_"+segment)
	if _, err := os.Stat(segmentPath); err != nil {
		restapi.Failed(c, errno.ErrSegmentNotFound)
		return
	}

	c.Header("Content-Type", contentTypeSegment)
	c.File(segmentPath)
}

func (sc *StreamController) loadVideo(c *gin.Context) (*entity.VideoAsset, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		restapi.Failed(c, errno.ErrNotFound)
		return nil, false
	}
	video, err := sc.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrVideoNotFound) {
			restapi.Failed(c, errno.ErrNotFound)
		} else {
			restapi.Failed(c, err)
		}
		return nil, false
	}
	return video, true
}

// RewritePlaylist turns the relative entries ffmpeg writes into absolute
// URLs under the public base. Playlist references become the index URL of
// their own label; segment references lose the on-disk resolution prefix
// because the segment route re-adds it.
func RewritePlaylist(content, publicBase string, videoID int64, resolution string) string {
	idStr := strconv.FormatInt(videoID, 10)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			continue
		case strings.HasPrefix(trimmed, "http://"):
			lines[i] = "https://" + strings.TrimPrefix(trimmed, "http://")
		case strings.HasSuffix(trimmed, ".m3u8"):
			label := strings.TrimSuffix(trimmed, ".m3u8")
			lines[i] = publicBase + "/video/" + idStr + "/" + label + "/index.m3u8"
		case strings.HasSuffix(trimmed, ".ts"):
			name := strings.TrimPrefix(trimmed, resolution+"_")
			lines[i] = publicBase + "/video/" + idStr + "/" + resolution + "/" + name
		}
	}
	return strings.Join(lines, "\n")
}

// safePathComponent rejects values that could escape the hls directory.
func safePathComponent(s string) bool {
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, "/\\") {
		return false
	}
	return !strings.Contains(s, "..")
}

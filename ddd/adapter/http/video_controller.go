package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"videoflix-service/ddd/application/app"
	"videoflix-service/ddd/application/dto"
	"videoflix-service/pkg/restapi"

	"videoflix-service/pkg/errno"
)

// VideoController exposes the video record JSON API.
type VideoController struct {
	app *app.VideoApp
}

func NewVideoController(videoApp *app.VideoApp) *VideoController {
	return &VideoController{app: videoApp}
}

// Create handles POST /api/videos.
func (vc *VideoController) Create(c *gin.Context) {
	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		restapi.Failed(c, errno.ErrInvalidParam)
		return
	}
	resp, err := vc.app.CreateVideo(c.Request.Context(), &req)
	if err != nil {
		restapi.Failed(c, err)
		return
	}
	restapi.Success(c, resp)
}

// Get handles GET /api/videos/:id.
func (vc *VideoController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		restapi.Failed(c, errno.ErrInvalidParam)
		return
	}
	resp, err := vc.app.GetVideo(c.Request.Context(), id)
	if err != nil {
		restapi.Failed(c, err)
		return
	}
	restapi.Success(c, resp)
}

// Categories handles GET /api/videos/categories.
func (vc *VideoController) Categories(c *gin.Context) {
	restapi.Success(c, vc.app.ListCategories())
}

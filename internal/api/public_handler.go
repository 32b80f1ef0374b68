package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/errcode"
	"folio/internal/view"
)

// PublicHandler 提供公开页面的只读接口。
type PublicHandler struct {
	presenter *view.Presenter
}

func NewPublicHandler(presenter *view.Presenter) *PublicHandler {
	return &PublicHandler{presenter: presenter}
}

func (h *PublicHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.Home(c.Request.Context()))
}

func (h *PublicHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.About(c.Request.Context()))
}

func (h *PublicHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.Contact(c.Request.Context()))
}

func (h *PublicHandler) Projects(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.Projects(c.Request.Context()))
}

// ProjectDetail 在项目不存在时返回 404，并提示前端回到项目列表。
func (h *PublicHandler) ProjectDetail(c *gin.Context) {
	project, err := h.presenter.ProjectDetail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, view.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "project not found",
			"code":     errcode.ResourceMissing,
			"redirect": "/projects",
		})
		return
	}
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": view.StatusReady, "data": project})
}

func (h *PublicHandler) Technologies(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.Technologies(c.Request.Context()))
}

func (h *PublicHandler) SocialLinks(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.SocialLinks(c.Request.Context()))
}

// Blog 即使 feed 拉取失败也返回 200，错误放在 feedError 字段中。
func (h *PublicHandler) Blog(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.Blog(c.Request.Context()))
}

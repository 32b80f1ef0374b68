package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"folio/internal/content"
	"folio/internal/editor"
	"folio/internal/schema"
	"folio/internal/store"
)

// AdminHandler 提供后台编辑接口。项目以外的文档都是单例，每次请求新建对应的编辑器。
type AdminHandler struct {
	repo          store.Repository
	projects      *editor.ProjectEditor
	scanner       uploadScanner
	maxUpload     int64
	blogShowCount int
}

func NewAdminHandler(repo store.Repository, projects *editor.ProjectEditor, clamdAddr string, maxUpload int64, blogShowCount int) *AdminHandler {
	return &AdminHandler{
		repo:          repo,
		projects:      projects,
		scanner:       newUploadScanner(clamdAddr),
		maxUpload:     maxUpload,
		blogShowCount: blogShowCount,
	}
}

func (h *AdminHandler) blogEditor() *editor.BlogConfigEditor {
	return editor.NewBlogConfigEditor(h.repo).WithDefaultShowCount(h.blogShowCount)
}

type projectRequest struct {
	schema.ProjectInput
	RemoveImage bool `json:"removeImage" form:"removeImage"`
}

// bindProject 同时支持 multipart 表单（可带 image 文件）与 JSON。
func (h *AdminHandler) bindProject(c *gin.Context) (projectRequest, *editor.ImageUpload, bool) {
	var req projectRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			BadRequest(c, err.Error())
			return req, nil, false
		}
		image, err := readImageUpload(c, h.maxUpload, h.scanner)
		if err != nil {
			writeUploadError(c, err)
			return req, nil, false
		}
		return req, image, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return req, nil, false
	}
	return req, nil, true
}

func (h *AdminHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": projects})
}

func (h *AdminHandler) CreateProject(c *gin.Context) {
	req, image, ok := h.bindProject(c)
	if !ok {
		return
	}
	result, err := h.projects.Create(c.Request.Context(), req.ProjectInput, image)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AdminHandler) UpdateProject(c *gin.Context) {
	req, image, ok := h.bindProject(c)
	if !ok {
		return
	}
	result, err := h.projects.Update(c.Request.Context(), c.Param("id"), req.ProjectInput, image, req.RemoveImage)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) DeleteProject(c *gin.Context) {
	remaining, err := h.projects.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": remaining})
}

func (h *AdminHandler) GetTechnologies(c *gin.Context) {
	ed := editor.NewTechnologiesEditor(h.repo)
	if err := ed.Load(c.Request.Context()); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{content.FieldCategories: ed.Items()})
}

func (h *AdminHandler) PutTechnologies(c *gin.Context) {
	var req struct {
		Categories []content.TechnologyCategory `json:"categories"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	ed := editor.NewTechnologiesEditor(h.repo)
	ed.Replace(req.Categories)
	persisted, err := ed.Submit(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{content.FieldCategories: persisted})
}

func (h *AdminHandler) GetSocialMedia(c *gin.Context) {
	ed := editor.NewSocialMediaEditor(h.repo)
	if err := ed.Load(c.Request.Context()); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{content.FieldPlatforms: ed.Items()})
}

func (h *AdminHandler) PutSocialMedia(c *gin.Context) {
	var req struct {
		Platforms []content.Platform `json:"platforms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	ed := editor.NewSocialMediaEditor(h.repo)
	ed.Replace(req.Platforms)
	persisted, err := ed.Submit(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{content.FieldPlatforms: persisted})
}

func (h *AdminHandler) GetBlogConfig(c *gin.Context) {
	cfg, err := h.blogEditor().Load(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) PutBlogConfig(c *gin.Context) {
	var in schema.BlogConfigInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	cfg, err := h.blogEditor().Submit(c.Request.Context(), in)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"folio/internal/content"
	"folio/internal/schema"
	"folio/internal/storage"
	"folio/internal/store"
)

// ImageUpload 是随项目表单提交的图片。
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageCleanupQueue 接收不再被引用的项目图片，异步从对象存储删除。
type ImageCleanupQueue interface {
	EnqueueImageCleanup(ctx context.Context, projectID string, imageURLs []string) error
}

// SaveResult 是写操作的结果：被写入的项目与写入后重新读取的项目列表。
type SaveResult struct {
	Project  content.Project   `json:"project"`
	Projects []content.Project `json:"projects"`
}

// ProjectEditor 管理 projects 集合。
type ProjectEditor struct {
	repo    store.Repository
	blobs   storage.BlobStore
	cleanup ImageCleanupQueue
	logger  *slog.Logger
	now     func() time.Time
}

// NewProjectEditor 构造 ProjectEditor；blobs 与 cleanup 可为 nil（此时不支持上传 / 不清理图片）。
func NewProjectEditor(repo store.Repository, blobs storage.BlobStore, cleanup ImageCleanupQueue, logger *slog.Logger) *ProjectEditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectEditor{repo: repo, blobs: blobs, cleanup: cleanup, logger: logger, now: time.Now}
}

var errUploadUnsupported = errors.New("image upload is not configured")

// List 返回全部项目，按创建顺序排列。
func (e *ProjectEditor) List(ctx context.Context) ([]content.Project, error) {
	docs, err := e.repo.ListDocuments(ctx, content.CollectionProjects)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := make([]content.Project, 0, len(docs))
	for _, d := range docs {
		p, err := content.DecodeProject(d.ID, d.Fields)
		if err != nil {
			e.logger.Warn("skip undecodable project", slog.String("id", d.ID), slog.Any("error", err))
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Get 读取单个项目。
func (e *ProjectEditor) Get(ctx context.Context, id string) (content.Project, error) {
	doc, err := e.repo.GetDocument(ctx, content.CollectionProjects, id)
	if err != nil {
		return content.Project{}, err
	}
	return content.DecodeProject(doc.ID, doc.Fields)
}

// Create 校验表单、上传可选图片并新建项目。校验失败时不访问仓库与对象存储。
func (e *ProjectEditor) Create(ctx context.Context, in schema.ProjectInput, image *ImageUpload) (*SaveResult, error) {
	project, err := schema.ValidateProject(in)
	if err != nil {
		return nil, err
	}

	now := e.now()
	if image != nil {
		if project.ImageURL, err = e.upload(ctx, now, image); err != nil {
			return nil, err
		}
	}
	stamp := now.UTC().Format(time.RFC3339)
	project.CreatedAt = stamp
	project.UpdatedAt = stamp

	id, err := e.repo.CreateDocument(ctx, content.CollectionProjects, projectFields(project, true))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	project.ID = id
	return e.reconcile(ctx, project)
}

// Update 校验表单并更新项目；image 非空时替换图片，removeImage 为真时清除图片。
// 被替换或清除的旧图片交给清理队列。
func (e *ProjectEditor) Update(ctx context.Context, id string, in schema.ProjectInput, image *ImageUpload, removeImage bool) (*SaveResult, error) {
	project, err := schema.ValidateProject(in)
	if err != nil {
		return nil, err
	}

	existing, err := e.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}

	now := e.now()
	project.ID = id
	project.CreatedAt = existing.CreatedAt
	project.Images = existing.Images
	project.ImageURL = existing.ImageURL
	switch {
	case image != nil:
		if project.ImageURL, err = e.upload(ctx, now, image); err != nil {
			return nil, err
		}
	case removeImage:
		project.ImageURL = ""
	}
	project.UpdatedAt = now.UTC().Format(time.RFC3339)

	if err := e.repo.UpdateDocument(ctx, content.CollectionProjects, id, projectFields(project, false)); err != nil {
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}

	if existing.ImageURL != "" && existing.ImageURL != project.ImageURL {
		e.enqueueCleanup(ctx, id, []string{existing.ImageURL})
	}
	return e.reconcile(ctx, project)
}

// Delete 删除项目并清理其图片，返回删除后的项目列表。
func (e *ProjectEditor) Delete(ctx context.Context, id string) ([]content.Project, error) {
	existing, err := e.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	if err := e.repo.DeleteDocument(ctx, content.CollectionProjects, id); err != nil {
		return nil, fmt.Errorf("delete project %s: %w", id, err)
	}
	if images := existing.AllImages(); len(images) > 0 {
		e.enqueueCleanup(ctx, id, images)
	}
	return e.List(ctx)
}

func (e *ProjectEditor) upload(ctx context.Context, now time.Time, image *ImageUpload) (string, error) {
	if e.blobs == nil {
		return "", errUploadUnsupported
	}
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := e.blobs.UploadBlob(ctx, storage.ProjectImagePath(now, image.Filename), image.Data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload project image: %w", err)
	}
	return url, nil
}

// 清理失败只记录日志：项目写入已经成功，孤立图片不影响展示。
func (e *ProjectEditor) enqueueCleanup(ctx context.Context, id string, urls []string) {
	if e.cleanup == nil {
		return
	}
	if err := e.cleanup.EnqueueImageCleanup(ctx, id, urls); err != nil {
		e.logger.Warn("enqueue image cleanup failed", slog.String("project_id", id), slog.Any("error", err))
	}
}

func (e *ProjectEditor) reconcile(ctx context.Context, written content.Project) (*SaveResult, error) {
	projects, err := e.List(ctx)
	if err != nil {
		return nil, err
	}
	result := &SaveResult{Project: written, Projects: projects}
	for _, p := range projects {
		if p.ID == written.ID {
			result.Project = p
			break
		}
	}
	return result, nil
}

// projectFields 显式列出字段，使清空的可选字段也能覆盖旧值。
func projectFields(p content.Project, withCreated bool) map[string]any {
	techs := make([]any, 0, len(p.TechStack))
	for _, t := range p.TechStack {
		techs = append(techs, t)
	}
	fields := map[string]any{
		"title":        p.Title,
		"description":  p.Description,
		"technologies": techs,
		"githubUrl":    p.GithubURL,
		"demoUrl":      p.DemoURL,
		"liveUrl":      p.LiveURL,
		"readme":       p.Readme,
		"imageUrl":     p.ImageURL,
		"updatedAt":    p.UpdatedAt,
	}
	if withCreated {
		fields["createdAt"] = p.CreatedAt
	}
	return fields
}

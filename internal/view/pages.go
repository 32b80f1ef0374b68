package view

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"folio/internal/content"
	"folio/internal/store"
)

// HomeView 是首页数据：hero 内容、项目数量、技术数量，各自独立加载。
type HomeView struct {
	Hero            Section[content.HomeContent] `json:"hero"`
	ProjectCount    Section[int]                 `json:"projectCount"`
	TechnologyCount Section[int]                 `json:"technologyCount"`
}

// Home 并发读取三块数据，任何一块失败都不影响其他块。
func (p *Presenter) Home(ctx context.Context) HomeView {
	var view HomeView
	var g errgroup.Group

	g.Go(func() error {
		view.Hero = p.hero(ctx)
		return nil
	})
	g.Go(func() error {
		view.ProjectCount = empty(0)
		if docs, ok := p.documents(ctx, "home", content.CollectionProjects); ok {
			view.ProjectCount = ready(len(docs))
		}
		return nil
	})
	g.Go(func() error {
		view.TechnologyCount = empty(0)
		fields := p.document(ctx, "home", content.CollectionTechnologies, content.MainDocID)
		if fields == nil {
			return nil
		}
		catalog, err := content.DecodeTechnologyCatalog(fields)
		if err != nil {
			p.decodeFailed("home", content.CollectionTechnologies, err)
			return nil
		}
		view.TechnologyCount = ready(catalog.Count())
		return nil
	})

	_ = g.Wait()
	return view
}

// hero 优先读取 homepage/main，缺失时回退到 homeContent 集合的第一个文档。
func (p *Presenter) hero(ctx context.Context) Section[content.HomeContent] {
	fields := p.document(ctx, "home", content.CollectionHomepage, content.MainDocID)
	if fields == nil {
		if docs, ok := p.documents(ctx, "home", content.CollectionHomeContent); ok && len(docs) > 0 {
			fields = docs[0].Fields
		}
	}
	if fields == nil {
		return empty(content.HomeContent{}.WithFallbacks())
	}
	home, err := content.Decode[content.HomeContent](fields)
	if err != nil {
		p.decodeFailed("home", content.CollectionHomepage, err)
		return empty(content.HomeContent{}.WithFallbacks())
	}
	return ready(home.WithFallbacks())
}

// AboutView 附带按换行拆分后的简介段落。
type AboutView struct {
	content.AboutContent
	Paragraphs []string `json:"paragraphs"`
}

func newAboutView(a content.AboutContent) AboutView {
	a = a.WithFallbacks()
	paragraphs := a.Paragraphs()
	if paragraphs == nil {
		paragraphs = []string{}
	}
	return AboutView{AboutContent: a, Paragraphs: paragraphs}
}

func (p *Presenter) About(ctx context.Context) Section[AboutView] {
	fields := p.document(ctx, "about", content.CollectionAbout, content.MainDocID)
	if fields == nil {
		return empty(newAboutView(content.AboutContent{}))
	}
	about, err := content.Decode[content.AboutContent](fields)
	if err != nil {
		p.decodeFailed("about", content.CollectionAbout, err)
		return empty(newAboutView(content.AboutContent{}))
	}
	return ready(newAboutView(about))
}

func (p *Presenter) Contact(ctx context.Context) Section[content.ContactContent] {
	fields := p.document(ctx, "contact", content.CollectionContact, content.MainDocID)
	if fields == nil {
		return empty(content.ContactContent{}.WithFallbacks())
	}
	contact, err := content.Decode[content.ContactContent](fields)
	if err != nil {
		p.decodeFailed("contact", content.CollectionContact, err)
		return empty(content.ContactContent{}.WithFallbacks())
	}
	return ready(contact.WithFallbacks())
}

// ContactFormEnabled 判断联系表单是否开放；读取失败视为关闭。
func (p *Presenter) ContactFormEnabled(ctx context.Context) bool {
	c := p.Contact(ctx)
	return c.Status == StatusReady && c.Data.ShowForm
}

// Projects 返回全部项目；无法解码的项目被跳过。
func (p *Presenter) Projects(ctx context.Context) Section[[]content.Project] {
	docs, ok := p.documents(ctx, "projects", content.CollectionProjects)
	if !ok {
		return empty([]content.Project{})
	}
	projects := make([]content.Project, 0, len(docs))
	for _, d := range docs {
		project, err := content.DecodeProject(d.ID, d.Fields)
		if err != nil {
			p.decodeFailed("projects", content.CollectionProjects, err)
			continue
		}
		projects = append(projects, project)
	}
	if len(projects) == 0 {
		return empty(projects)
	}
	return ready(projects)
}

// ErrProjectNotFound 表示详情页的项目不存在，调用方应重定向到项目列表。
var ErrProjectNotFound = errors.New("project not found")

// ProjectDetailView 附带渲染后的 README。
type ProjectDetailView struct {
	content.Project
	ReadmeHTML string `json:"readmeHtml,omitempty"`
}

// ProjectDetail 读取单个项目；不存在时返回 ErrProjectNotFound，其他失败原样返回。
// README 渲染失败只记录日志，页面仍展示项目本身。
func (p *Presenter) ProjectDetail(ctx context.Context, id string) (ProjectDetailView, error) {
	doc, err := p.repo.GetDocument(ctx, content.CollectionProjects, id)
	if errors.Is(err, store.ErrNotFound) {
		return ProjectDetailView{}, ErrProjectNotFound
	}
	if err != nil {
		p.fallback("project", content.CollectionProjects, err)
		return ProjectDetailView{}, err
	}
	project, err := content.DecodeProject(doc.ID, doc.Fields)
	if err != nil {
		return ProjectDetailView{}, err
	}
	html, err := RenderReadme(project.Readme)
	if err != nil {
		p.logger.Warn("render project readme failed", slog.String("id", id), slog.Any("error", err))
	}
	return ProjectDetailView{Project: project, ReadmeHTML: html}, nil
}

func (p *Presenter) Technologies(ctx context.Context) Section[content.TechnologyCatalog] {
	blank := content.TechnologyCatalog{Categories: []content.TechnologyCategory{}}
	fields := p.document(ctx, "technologies", content.CollectionTechnologies, content.MainDocID)
	if fields == nil {
		return empty(blank)
	}
	catalog, err := content.DecodeTechnologyCatalog(fields)
	if err != nil {
		p.decodeFailed("technologies", content.CollectionTechnologies, err)
		return empty(blank)
	}
	if len(catalog.Categories) == 0 {
		return empty(blank)
	}
	return ready(catalog)
}

// SocialLinks 按 order 升序返回平台；order 相同保持原顺序。
func (p *Presenter) SocialLinks(ctx context.Context) Section[[]content.Platform] {
	fields := p.document(ctx, "social", content.CollectionSocialMedia, content.MainDocID)
	if fields == nil {
		return empty([]content.Platform{})
	}
	cfg, err := content.Decode[content.SocialMediaConfig](fields)
	if err != nil {
		p.decodeFailed("social", content.CollectionSocialMedia, err)
		return empty([]content.Platform{})
	}
	platforms := SortPlatforms(cfg.Platforms)
	if len(platforms) == 0 {
		return empty(platforms)
	}
	return ready(platforms)
}

// SortPlatforms 返回按 order 稳定升序排列的副本。
func SortPlatforms(platforms []content.Platform) []content.Platform {
	out := make([]content.Platform, len(platforms))
	copy(out, platforms)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

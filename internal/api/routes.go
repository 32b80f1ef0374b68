package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"folio/internal/debounce"
	"folio/internal/editor"
	"folio/internal/store"
	"folio/internal/view"
)

// Dependencies 汇总注册路由所需的组件。
type Dependencies struct {
	Repo                 store.Repository
	Presenter            *view.Presenter
	Projects             *editor.ProjectEditor
	Sender               MessageSender
	ContactLimiter       *RateLimiter
	ClamdAddr            string
	MaxUploadBytes       int64
	DefaultBlogShowCount int
	SearchDelay          time.Duration
	SearchClock          debounce.Clock
	AllowedOrigins       []string
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	publicHandler := NewPublicHandler(deps.Presenter)
	contactHandler := NewContactHandler(deps.Presenter, deps.Sender, deps.ContactLimiter)
	searchHandler := NewBlogSearchHandler(deps.Presenter, deps.SearchDelay, deps.SearchClock, deps.AllowedOrigins)
	adminHandler := NewAdminHandler(deps.Repo, deps.Projects, deps.ClamdAddr, deps.MaxUploadBytes, deps.DefaultBlogShowCount)

	v1 := router.Group("/v1")
	{
		v1.GET("/home", publicHandler.Home)
		v1.GET("/about", publicHandler.About)
		v1.GET("/projects", publicHandler.Projects)
		v1.GET("/projects/:id", publicHandler.ProjectDetail)
		v1.GET("/technologies", publicHandler.Technologies)
		v1.GET("/social", publicHandler.SocialLinks)
		v1.GET("/blog", publicHandler.Blog)
		v1.GET("/blog/search", searchHandler.HandleConnection)
		v1.GET("/contact", publicHandler.Contact)
		v1.POST("/contact/messages", contactHandler.SubmitMessage)

		adminGroup := v1.Group("/admin")
		{
			adminGroup.GET("/projects", adminHandler.ListProjects)
			adminGroup.POST("/projects", adminHandler.CreateProject)
			adminGroup.PUT("/projects/:id", adminHandler.UpdateProject)
			adminGroup.DELETE("/projects/:id", adminHandler.DeleteProject)
			adminGroup.GET("/technologies", adminHandler.GetTechnologies)
			adminGroup.PUT("/technologies", adminHandler.PutTechnologies)
			adminGroup.GET("/social-media", adminHandler.GetSocialMedia)
			adminGroup.PUT("/social-media", adminHandler.PutSocialMedia)
			adminGroup.GET("/blog", adminHandler.GetBlogConfig)
			adminGroup.PUT("/blog", adminHandler.PutBlogConfig)
		}
	}
}

package content

// 文档库中的集合名称。
const (
	CollectionHomepage     = "homepage"
	CollectionHomeContent  = "homeContent"
	CollectionAbout        = "about"
	CollectionProjects     = "projects"
	CollectionTechnologies = "technologies"
	CollectionBlog         = "blog"
	CollectionContact      = "contact"
	CollectionSocialMedia  = "socialMedia"
)

// MainDocID 是单例文档的固定 ID。
const MainDocID = "main"

// 列表型文档的主字段。
const (
	FieldCategories = "categories"
	FieldPlatforms  = "platforms"
)

package view

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/content"
	"folio/internal/feed"
	"folio/internal/store"
)

// flakyReader 对指定集合返回不可用错误，其余委托给内存仓库。
type flakyReader struct {
	*store.MemoryRepository
	broken map[string]bool
}

func (f *flakyReader) GetDocument(ctx context.Context, collection, id string) (*store.Document, error) {
	if f.broken[collection] {
		return nil, fmt.Errorf("get %s: %w", collection, store.ErrUnavailable)
	}
	return f.MemoryRepository.GetDocument(ctx, collection, id)
}

func (f *flakyReader) ListDocuments(ctx context.Context, collection string) ([]store.Document, error) {
	if f.broken[collection] {
		return nil, fmt.Errorf("list %s: %w", collection, store.ErrUnavailable)
	}
	return f.MemoryRepository.ListDocuments(ctx, collection)
}

type stubFetcher struct {
	feed  *feed.Feed
	err   error
	users []string
}

func (s *stubFetcher) Fetch(_ context.Context, username string) (*feed.Feed, error) {
	s.users = append(s.users, username)
	return s.feed, s.err
}

func seed(t *testing.T, repo *store.MemoryRepository, collection, id string, fields map[string]any) {
	t.Helper()
	require.NoError(t, repo.SetDocument(context.Background(), collection, id, fields))
}

func TestHome_SlicesAreIndependent(t *testing.T) {
	repo := store.NewMemoryRepository()
	seed(t, repo, content.CollectionHomepage, content.MainDocID, map[string]any{
		"fullName": "Ada Lovelace", "title": "Engineer", "experience": 7,
	})
	seed(t, repo, content.CollectionTechnologies, content.MainDocID, map[string]any{
		"categories": []any{map[string]any{"name": "Backend", "technologies": []any{"Go", "Postgres"}}},
	})

	reader := &flakyReader{MemoryRepository: repo, broken: map[string]bool{content.CollectionProjects: true}}
	home := NewPresenter(reader, nil, nil).Home(context.Background())

	assert.Equal(t, StatusReady, home.Hero.Status)
	assert.Equal(t, "Ada Lovelace", home.Hero.Data.FullName)
	assert.Equal(t, content.Titles{"Engineer"}, home.Hero.Data.Title)
	assert.Equal(t, content.FlexString("7"), home.Hero.Data.Experience)
	assert.Equal(t, content.FallbackBio, home.Hero.Data.Bio)

	assert.Equal(t, StatusEmpty, home.ProjectCount.Status)
	assert.Equal(t, 0, home.ProjectCount.Data)

	assert.Equal(t, StatusReady, home.TechnologyCount.Status)
	assert.Equal(t, 2, home.TechnologyCount.Data)
}

func TestHome_FallsBackToHomeContentCollection(t *testing.T) {
	repo := store.NewMemoryRepository()
	_, err := repo.CreateDocument(context.Background(), content.CollectionHomeContent, map[string]any{
		"fullName": "Legacy Name", "title": []any{"A", "B"},
	})
	require.NoError(t, err)

	home := NewPresenter(repo, nil, nil).Home(context.Background())
	assert.Equal(t, StatusReady, home.Hero.Status)
	assert.Equal(t, "Legacy Name", home.Hero.Data.FullName)
	assert.Equal(t, content.Titles{"A", "B"}, home.Hero.Data.Title)
}

func TestAbsentAndFailedRenderTheSame(t *testing.T) {
	absent := NewPresenter(store.NewMemoryRepository(), nil, nil)
	broken := NewPresenter(&flakyReader{
		MemoryRepository: store.NewMemoryRepository(),
		broken:           map[string]bool{content.CollectionAbout: true, content.CollectionContact: true, content.CollectionHomepage: true, content.CollectionHomeContent: true},
	}, nil, nil)
	ctx := context.Background()

	assert.Equal(t, absent.About(ctx), broken.About(ctx))
	assert.Equal(t, absent.Contact(ctx), broken.Contact(ctx))
	assert.Equal(t, absent.Home(ctx).Hero, broken.Home(ctx).Hero)

	about := absent.About(ctx)
	assert.Equal(t, StatusEmpty, about.Status)
	assert.Equal(t, content.FallbackAboutName, about.Data.FullName)
	assert.NotNil(t, about.Data.Paragraphs)

	contact := absent.Contact(ctx)
	assert.Equal(t, content.FallbackContactHeading, contact.Data.Heading)
	assert.False(t, absent.ContactFormEnabled(ctx))
}

func TestAbout_Paragraphs(t *testing.T) {
	repo := store.NewMemoryRepository()
	seed(t, repo, content.CollectionAbout, content.MainDocID, map[string]any{
		"fullName":  "Ada",
		"aboutText": "First paragraph.\n\nSecond paragraph.",
		"education": []any{map[string]any{"school": "METU", "department": "CS", "year": "2015"}},
	})
	about := NewPresenter(repo, nil, nil).About(context.Background())
	assert.Equal(t, StatusReady, about.Status)
	assert.Equal(t, []string{"First paragraph.", "Second paragraph."}, about.Data.Paragraphs)
	assert.Len(t, about.Data.Education, 1)
}

func TestSocialLinks_StableSortByOrder(t *testing.T) {
	repo := store.NewMemoryRepository()
	seed(t, repo, content.CollectionSocialMedia, content.MainDocID, map[string]any{
		"platforms": []any{
			map[string]any{"name": "c", "url": "https://c.example.com", "icon": "c", "order": 2},
			map[string]any{"name": "a1", "url": "https://a.example.com", "icon": "a", "order": 1},
			map[string]any{"name": "z", "url": "https://z.example.com", "icon": "z", "order": 0},
			map[string]any{"name": "a2", "url": "https://a.example.com", "icon": "a", "order": 1},
		},
	})

	links := NewPresenter(repo, nil, nil).SocialLinks(context.Background())
	assert.Equal(t, StatusReady, links.Status)
	names := make([]string, 0, len(links.Data))
	for _, p := range links.Data {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"z", "a1", "a2", "c"}, names)
}

func TestProjectsAndDetail(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()
	id, err := repo.CreateDocument(ctx, content.CollectionProjects, map[string]any{
		"title": "Folio", "description": "d", "technologies": []any{"Go"},
		"readme": "# Setup\n\nRun `make`.\n\n<script>alert(1)</script>",
	})
	require.NoError(t, err)

	p := NewPresenter(repo, nil, nil)
	list := p.Projects(ctx)
	assert.Equal(t, StatusReady, list.Status)
	require.Len(t, list.Data, 1)
	assert.Equal(t, id, list.Data[0].ID)

	detail, err := p.ProjectDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Folio", detail.Title)
	assert.Contains(t, detail.ReadmeHTML, `<h1 id="setup">Setup</h1>`)
	assert.Contains(t, detail.ReadmeHTML, "<code>make</code>")
	assert.NotContains(t, detail.ReadmeHTML, "<script>")

	_, err = p.ProjectDetail(ctx, "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	broken := NewPresenter(&flakyReader{MemoryRepository: repo, broken: map[string]bool{content.CollectionProjects: true}}, nil, nil)
	_, err = broken.ProjectDetail(ctx, id)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Equal(t, StatusEmpty, broken.Projects(ctx).Status)
}

func TestTechnologies_LegacyShape(t *testing.T) {
	repo := store.NewMemoryRepository()
	seed(t, repo, content.CollectionTechnologies, content.MainDocID, map[string]any{
		"frontend": []any{map[string]any{"name": "React", "icon": "FaReact"}},
		"backend":  []any{map[string]any{"name": "Go", "icon": "SiGo"}},
	})
	techs := NewPresenter(repo, nil, nil).Technologies(context.Background())
	assert.Equal(t, StatusReady, techs.Status)
	require.Len(t, techs.Data.Categories, 2)
	assert.Equal(t, "backend", techs.Data.Categories[0].Name)
}

func TestBlog(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	view := NewPresenter(repo, &stubFetcher{}, nil).Blog(ctx)
	assert.Equal(t, ErrBlogNotConfigured.Error(), view.FeedError)
	assert.Equal(t, content.FallbackBlogHeading, view.Config.Heading)

	seed(t, repo, content.CollectionBlog, content.MainDocID, map[string]any{
		"heading": "Writing", "mediumUsername": "ada", "showCount": 2,
	})
	posts := []feed.Post{{Title: "1"}, {Title: "2"}, {Title: "3"}}
	fetcher := &stubFetcher{feed: &feed.Feed{Title: "Stories by Ada", Posts: posts}}
	view = NewPresenter(repo, fetcher, nil).Blog(ctx)

	assert.Empty(t, view.FeedError)
	assert.Equal(t, []string{"ada"}, fetcher.users)
	assert.Len(t, view.Posts, 2)
	assert.Equal(t, 3, view.Total)
	require.NotNil(t, view.Profile)
	assert.Equal(t, "https://medium.com/@ada", view.Profile.URL)
	assert.Equal(t, "Stories by Ada", view.Profile.Title)
	assert.True(t, view.Config.EnableSearch)

	failing := &stubFetcher{err: fmt.Errorf("%w: status 500", feed.ErrFeedFetch)}
	view = NewPresenter(repo, failing, nil).Blog(ctx)
	assert.Contains(t, view.FeedError, "feed fetch failed")
	assert.Empty(t, view.Posts)

	_, _, err := NewPresenter(repo, failing, nil).BlogFeed(ctx)
	assert.True(t, errors.Is(err, feed.ErrFeedFetch))
}

func TestBlog_DefaultShowCountApplies(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	notConfigured := NewPresenter(repo, nil, nil).WithDefaultShowCount(3).Blog(ctx)
	assert.Equal(t, 3, notConfigured.Config.ShowCount)

	seed(t, repo, content.CollectionBlog, content.MainDocID, map[string]any{"mediumUsername": "ada"})
	posts := []feed.Post{{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}, {Title: "5"}}
	fetcher := &stubFetcher{feed: &feed.Feed{Posts: posts}}

	view := NewPresenter(repo, fetcher, nil).WithDefaultShowCount(3).Blog(ctx)
	assert.Equal(t, 3, view.Config.ShowCount)
	assert.Len(t, view.Posts, 3)

	view = NewPresenter(repo, fetcher, nil).Blog(ctx)
	assert.Equal(t, content.DefaultShowCount, view.Config.ShowCount)
	assert.Len(t, view.Posts, 5)
}

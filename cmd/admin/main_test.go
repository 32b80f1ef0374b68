package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/content"
	"folio/internal/store"
)

// run 执行一次命令；所有调用共享同一个内存仓库。
func run(t *testing.T, repo *store.MemoryRepository, args ...string) (string, error) {
	t.Helper()
	var opened dbFlags
	root := newRootCmd(func(flags dbFlags) (store.Repository, error) {
		opened = flags
		return repo, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--memory"}, args...))
	err := root.ExecuteContext(context.Background())
	assert.True(t, opened.memory || err != nil)
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	repo := store.NewMemoryRepository()

	out, err := run(t, repo, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded blog/main")
	assert.Contains(t, out, "seeded socialMedia/main")

	out, err = run(t, repo, "seed")
	require.NoError(t, err)
	assert.Equal(t, "nothing to seed\n", out)
}

func TestTechnologiesCommands(t *testing.T) {
	repo := store.NewMemoryRepository()

	out, err := run(t, repo, "technologies", "add", "Backend", "Go", "Postgres")
	require.NoError(t, err)
	assert.Equal(t, "0\tBackend\tGo, Postgres\n", out)

	_, err = run(t, repo, "technologies", "add", "Frontend", "Svelte")
	require.NoError(t, err)

	out, err = run(t, repo, "technologies", "remove", "0")
	require.NoError(t, err)
	assert.Equal(t, "0\tFrontend\tSvelte\n", out)

	_, err = run(t, repo, "technologies", "remove", "5")
	assert.Error(t, err)
}

func TestSocialAddRejectsInvalidURL(t *testing.T) {
	repo := store.NewMemoryRepository()

	_, err := run(t, repo, "social", "add", "GitHub", "not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platforms[0].url")

	doc, getErr := repo.GetDocument(context.Background(), content.CollectionSocialMedia, content.MainDocID)
	assert.Nil(t, doc)
	assert.ErrorIs(t, getErr, store.ErrNotFound)

	out, err := run(t, repo, "social", "add", "GitHub", "https://github.com/ada")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0\tGitHub\thttps://github.com/ada\torder=0"))
}

package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/content"
)

func validBlogInput() BlogConfigInput {
	return BlogConfigInput{
		Heading:        "Blog",
		Description:    "Notes",
		MediumUsername: "ada",
		ShowCount:      10,
	}
}

func TestValidateBlogConfig_ShowCountRange(t *testing.T) {
	for _, n := range []int{1, 25, 50} {
		in := validBlogInput()
		in.ShowCount = n
		cfg, err := ValidateBlogConfig(in)
		require.NoError(t, err, "showCount=%d", n)
		assert.Equal(t, n, cfg.ShowCount)
	}

	for _, n := range []int{0, 51, -3} {
		in := validBlogInput()
		in.ShowCount = n
		_, err := ValidateBlogConfig(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "showCount=%d", n)
		assert.True(t, verr.Has("showCount"), "showCount=%d", n)
		assert.Len(t, verr.Fields, 1)
	}
}

func TestValidateBlogConfig_DefaultsAndHeroImage(t *testing.T) {
	cfg, err := ValidateBlogConfig(validBlogInput())
	require.NoError(t, err)
	assert.True(t, cfg.ShowProfile)
	assert.True(t, cfg.ShowTags)
	assert.True(t, cfg.EnableSearch)

	off := false
	in := validBlogInput()
	in.ShowTags = &off
	in.HeroImage = "not a url"
	_, err = ValidateBlogConfig(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("heroImage"))

	in.HeroImage = "https://cdn.example.com/hero.png"
	cfg, err = ValidateBlogConfig(in)
	require.NoError(t, err)
	assert.False(t, cfg.ShowTags)
}

func TestValidateBlogConfig_RequiredFields(t *testing.T) {
	_, err := ValidateBlogConfig(BlogConfigInput{ShowCount: 5})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"heading", "description", "mediumUsername"}, fields)
}

func TestSplitTechnologies(t *testing.T) {
	assert.Equal(t, []string{"React", "Tailwind CSS", "Firebase"}, SplitTechnologies("React,  Tailwind CSS ,Firebase"))
	assert.Equal(t, []string{"Go"}, SplitTechnologies(" , Go,, "))
	assert.Equal(t, []string{}, SplitTechnologies(""))
}

func TestValidateProject(t *testing.T) {
	_, err := ValidateProject(ProjectInput{Description: "d"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("title"))

	_, err = ValidateProject(ProjectInput{Title: "t", Description: "d", GithubURL: "github.com/no-scheme"})
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("githubUrl"))

	p, err := ValidateProject(ProjectInput{
		Title:        "  Folio ",
		Description:  "Portfolio backend",
		GithubURL:    "",
		DemoURL:      "https://folio.example.com",
		Technologies: "React,  Tailwind CSS ,Firebase",
	})
	require.NoError(t, err)
	assert.Equal(t, "Folio", p.Title)
	assert.Equal(t, []string{"React", "Tailwind CSS", "Firebase"}, p.TechStack)
	assert.Empty(t, p.GithubURL)
}

func TestValidateSocialMedia(t *testing.T) {
	platforms := []content.Platform{
		{Name: "GitHub", URL: "https://github.com/ada", Icon: "FaGithub", Order: 0},
		{Name: "", URL: "nope", Icon: "", Order: 1},
	}
	_, err := ValidateSocialMedia(platforms)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("platforms[1].name"))
	assert.True(t, verr.Has("platforms[1].url"))
	assert.True(t, verr.Has("platforms[1].icon"))
	assert.False(t, verr.Has("platforms[0].url"))

	out, err := ValidateSocialMedia(platforms[:1])
	require.NoError(t, err)
	assert.Equal(t, platforms[:1], out)
}

func TestValidateTechnologies(t *testing.T) {
	_, err := ValidateTechnologies([]content.TechnologyCategory{
		{Name: "Backend", Technologies: []string{"Go", " "}},
		{Name: "", Technologies: nil},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("categories[0].technologies[1]"))
	assert.True(t, verr.Has("categories[1].name"))
	assert.True(t, verr.Has("categories[1].technologies"))

	out, err := ValidateTechnologies([]content.TechnologyCategory{{Name: " Backend ", Technologies: []string{" Go "}}})
	require.NoError(t, err)
	assert.Equal(t, "Backend", out[0].Name)
	assert.Equal(t, []string{"Go"}, out[0].Technologies)
}

func TestValidateContactMessage(t *testing.T) {
	_, err := ValidateContactMessage(ContactMessage{Name: "Ada", Email: "ada@", Subject: "Hi", Message: "Hello"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("email"))

	msg, err := ValidateContactMessage(ContactMessage{Name: "Ada", Email: " ada@example.com ", Subject: "Hi", Message: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", msg.Email)
}

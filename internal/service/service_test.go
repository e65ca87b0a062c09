package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
	"github.com/a3tai/mcp-seo-headings/internal/security"
	"github.com/a3tai/mcp-seo-headings/internal/source"
)

const recipePost = `<!-- wp:paragraph -->
<p></p>
<!-- /wp:paragraph -->

<!-- wp:paragraph -->
<p>Ricetta della pizza napoletana classica</p>
<!-- /wp:paragraph -->

<!-- wp:heading {"level":3} -->
<h3 class="wp-block-heading">Gli ingredienti base</h3>
<!-- /wp:heading -->`

func newTestService(t *testing.T, opts ...Option) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewService(1024*1024, dir, opts...)
	require.NoError(t, err)
	return svc, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewService(t *testing.T) {
	_, err := NewService(1024, "")
	assert.Error(t, err)

	_, err = NewService(1024, t.TempDir(), WithEligibility("everything"))
	assert.Error(t, err)

	svc, err := NewService(2048, "/docs", WithEligibility(headings.EligibilityParagraphsAndHeadings))
	require.NoError(t, err)
	assert.Equal(t, int64(2048), svc.GetMaxFileSize())
	assert.Equal(t, "/docs", svc.GetDocumentDirectory())
}

func TestGetSuggestions_Content(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.GetSuggestions(SuggestionsRequest{
		Content: recipePost,
		Title:   "Pizza Napoletana",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.BlockCount)
	assert.Equal(t, 2, result.EligibleCount)
	assert.Equal(t, []headings.Keyword{"pizza", "napoletana"}, result.TitleKeywords)
	assert.False(t, result.Disabled)

	require.Len(t, result.Suggestions, 1)
	s := result.Suggestions[0]
	assert.Equal(t, 1, s.BlockIndex)
	assert.Equal(t, 2, s.SuggestedLevel)
	assert.Equal(t, 39, s.Length)
	assert.Equal(t, 90, s.Confidence)
}

func TestGetSuggestions_EligibilityOverride(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.GetSuggestions(SuggestionsRequest{
		Content:     recipePost,
		Title:       "Pizza Napoletana",
		Eligibility: headings.EligibilityParagraphsAndHeadings,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.EligibleCount)
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, 2, result.Suggestions[1].BlockIndex)
	assert.Equal(t, 3, result.Suggestions[1].CurrentLevel)

	_, err = svc.GetSuggestions(SuggestionsRequest{Content: recipePost, Eligibility: "tables"})
	assert.Error(t, err)
}

func TestGetSuggestions_Blocks(t *testing.T) {
	svc, _ := newTestService(t)
	blocks := []headings.Block{
		{Kind: "core/paragraph", Markup: "<p>Forno a legna o elettrico</p>"},
		{Kind: "core/image", Markup: "<figure></figure>"},
	}

	result, err := svc.GetSuggestions(SuggestionsRequest{
		Blocks:  blocks,
		Content: "ignored when blocks are given",
		Keyword: "forno",
	})
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, 2, result.Suggestions[0].SuggestedLevel)
	assert.Equal(t, headings.BlockKind("core/paragraph"), blocks[0].Kind, "caller's blocks are not modified")
}

func TestGetSuggestions_Disabled(t *testing.T) {
	svc, _ := newTestService(t)
	disabled := false

	result, err := svc.GetSuggestions(SuggestionsRequest{Content: recipePost, Title: "Pizza", Enabled: &disabled})
	require.NoError(t, err)
	assert.True(t, result.Disabled)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
}

func TestGetSuggestions_Formats(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.GetSuggestions(SuggestionsRequest{
		Content: "# Titolo\n\nUna riga breve\n",
		Format:  "markdown",
	})
	require.NoError(t, err)
	assert.Len(t, result.Suggestions, 1)

	_, err = svc.GetSuggestions(SuggestionsRequest{Content: "x", Format: "docx"})
	assert.True(t, errors.Is(err, source.ErrUnsupportedFormat))

	result, err = svc.GetSuggestions(SuggestionsRequest{})
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 0, result.BlockCount)
}

func TestAnalyzeFile(t *testing.T) {
	var logs bytes.Buffer
	svc, dir := newTestService(t, WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	writeFile(t, filepath.Join(dir, "drafts", "pizza.yaml"), `title: Pizza Napoletana
keyword: cottura
content: |
  <!-- wp:paragraph -->
  <p>Ricetta della pizza napoletana classica</p>
  <!-- /wp:paragraph -->
  <!-- wp:paragraph -->
  <p>Tempi di cottura nel forno</p>
  <!-- /wp:paragraph -->
`)

	result, err := svc.AnalyzeFile(AnalyzeFileRequest{Path: "drafts/pizza.yaml"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "drafts", "pizza.yaml"), result.Path)
	assert.Equal(t, source.FormatGutenberg, result.Format)
	assert.Equal(t, "Pizza Napoletana", result.Title)
	assert.Equal(t, "cottura", result.Keyword)
	require.Len(t, result.Suggestions, 2)
	assert.Equal(t, 90, result.Suggestions[1].Confidence)
	assert.Equal(t, "Contains focus keyword: 'cottura'", result.Suggestions[1].Reasons[0])
	assert.Contains(t, logs.String(), "document analyzed")

	t.Run("request overrides title and keyword", func(t *testing.T) {
		result, err := svc.AnalyzeFile(AnalyzeFileRequest{
			Path:    filepath.Join(dir, "drafts", "pizza.yaml"),
			Title:   "Guida al forno",
			Keyword: "ricetta",
		})
		require.NoError(t, err)
		assert.Equal(t, "Guida al forno", result.Title)
		assert.Equal(t, "ricetta", result.Keyword)
		assert.Equal(t, []headings.Keyword{"guida", "forno"}, result.TitleKeywords)
	})

	t.Run("disabled document", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "off.json"), `{"title":"Pizza","enabled":false,"content":"<p>Una riga abbastanza lunga</p>"}`)
		result, err := svc.AnalyzeFile(AnalyzeFileRequest{Path: "off.json"})
		require.NoError(t, err)
		assert.True(t, result.Disabled)
		assert.Empty(t, result.Suggestions)
		assert.Equal(t, 1, result.BlockCount)
	})

	t.Run("outside documents directory", func(t *testing.T) {
		_, err := svc.AnalyzeFile(AnalyzeFileRequest{Path: "../elsewhere.md"})
		assert.True(t, errors.Is(err, security.ErrOutsideDirectory))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := svc.AnalyzeFile(AnalyzeFileRequest{})
		assert.True(t, errors.Is(err, security.ErrEmptyPath))
	})

	t.Run("too large", func(t *testing.T) {
		small, err := NewService(8, dir)
		require.NoError(t, err)
		_, err = small.AnalyzeFile(AnalyzeFileRequest{Path: "drafts/pizza.yaml"})
		assert.True(t, errors.Is(err, source.ErrFileTooLarge))
	})
}

func TestTransformBlock(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.TransformBlock(TransformRequest{Markup: "<p>La <strong>cottura</strong></p>", Level: 2})
	require.NoError(t, err)
	assert.Equal(t, `<h2 class="wp-block-heading auto-seo-generated">La <strong>cottura</strong></h2>`, result.Markup)
	assert.Equal(t, 2, result.Level)

	result, err = svc.TransformBlock(TransformRequest{Markup: result.Markup, ToParagraph: true})
	require.NoError(t, err)
	assert.Equal(t, "<p>La <strong>cottura</strong></p>", result.Markup)
	assert.Zero(t, result.Level)

	_, err = svc.TransformBlock(TransformRequest{Markup: "<p>x</p>", Level: 4})
	assert.True(t, errors.Is(err, headings.ErrInvalidLevel))

	_, err = svc.TransformBlock(TransformRequest{Markup: "  ", Level: 2})
	assert.True(t, errors.Is(err, ErrEmptyMarkup))
}

func TestExtractKeywords(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, []headings.Keyword{"pizza", "napoletana"}, svc.ExtractKeywords("La Pizza Napoletana"))
}

func TestListDocuments(t *testing.T) {
	svc, dir := newTestService(t)

	writeFile(t, filepath.Join(dir, "pizza.md"), "# Pizza")
	writeFile(t, filepath.Join(dir, "drafts", "Pizza-Fritta.yaml"), "title: x")
	writeFile(t, filepath.Join(dir, "drafts", "pane.html"), "<p>pane</p>")
	writeFile(t, filepath.Join(dir, "notes.png"), "binary")
	writeFile(t, filepath.Join(dir, ".cache", "hidden.md"), "# hidden")

	result, err := svc.ListDocuments(ListDocumentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)

	result, err = svc.ListDocuments(ListDocumentsRequest{Query: "PIZZA"})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalCount)
	for _, f := range result.Files {
		assert.Contains(t, f.Path, dir)
	}

	result, err = svc.ListDocuments(ListDocumentsRequest{Directory: filepath.Join(dir, "drafts")})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)

	_, err = svc.ListDocuments(ListDocumentsRequest{Directory: t.TempDir()})
	assert.True(t, errors.Is(err, security.ErrOutsideDirectory))

	_, err = svc.ListDocuments(ListDocumentsRequest{Directory: filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestFindDocumentsLimit(t *testing.T) {
	svc, dir := newTestService(t)
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFile(t, filepath.Join(dir, name), "# x")
	}

	files, err := svc.findDocuments(dir, "", 2)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestServerInfo(t *testing.T) {
	svc, dir := newTestService(t)
	writeFile(t, filepath.Join(dir, "post.md"), "# Post")

	info, err := svc.ServerInfo(ServerInfoRequest{}, "mcp-seo-headings", "1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "mcp-seo-headings", info.ServerName)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, dir, info.DocumentDirectory)
	assert.Equal(t, headings.EligibilityParagraphs, info.Eligibility)
	assert.Len(t, info.AvailableTools, 6)
	assert.Len(t, info.SupportedFormats, 5)
	require.Len(t, info.DirectoryContents, 1)
	assert.Equal(t, "post.md", info.DirectoryContents[0].Name)
	assert.Contains(t, info.UsageGuidance, "seo_analyze_file")
}

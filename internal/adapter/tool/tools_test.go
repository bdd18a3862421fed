package tool

import (
	"context"
	"strings"
	"testing"

	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type browserSpy struct {
	launched  bool
	searched  string
	fetched   string
	results   []entity.SearchResult
	resultErr error
}

func (b *browserSpy) Launch(ctx context.Context) error { b.launched = true; return nil }
func (b *browserSpy) OpenSearchEngine(ctx context.Context) error { return nil }
func (b *browserSpy) Search(ctx context.Context, query string) error {
	b.searched = query
	return nil
}
func (b *browserSpy) SearchResults(ctx context.Context) ([]entity.SearchResult, error) {
	return b.results, b.resultErr
}
func (b *browserSpy) FetchPage(ctx context.Context, url string) (string, error) {
	b.fetched = url
	return "some page text", nil
}
func (b *browserSpy) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return &entity.Screenshot{Data: []byte{0xFF, 0xD8}, Format: "jpeg", Width: 1, Height: 1}, nil
}
func (b *browserSpy) State() entity.SessionState { return entity.SessionPageActive }
func (b *browserSpy) Close()                     {}

func TestLaunchTool(t *testing.T) {
	spy := &browserSpy{}
	tool := NewLaunchTool(spy, logger.NewNop())

	out, err := tool.Execute(context.Background(), "{}")

	require.NoError(t, err)
	assert.True(t, spy.launched)
	assert.Contains(t, out, "running")
}

func TestWebSearchTool_PassesQuery(t *testing.T) {
	spy := &browserSpy{}
	tool := NewWebSearchTool(spy, logger.NewNop())

	out, err := tool.Execute(context.Background(), `{"query":"go concurrency"}`)

	require.NoError(t, err)
	assert.Equal(t, "go concurrency", spy.searched)
	assert.Contains(t, out, "go concurrency")
}

func TestWebSearchTool_RejectsEmptyQuery(t *testing.T) {
	tool := NewWebSearchTool(&browserSpy{}, logger.NewNop())

	_, err := tool.Execute(context.Background(), `{"query":""}`)

	assert.ErrorContains(t, err, "empty")
}

func TestWebSearchTool_RejectsBadJSON(t *testing.T) {
	tool := NewWebSearchTool(&browserSpy{}, logger.NewNop())

	_, err := tool.Execute(context.Background(), "not-json")

	assert.ErrorContains(t, err, "invalid arguments")
}

func TestSearchResultsTool_EncodesJSON(t *testing.T) {
	spy := &browserSpy{results: []entity.SearchResult{
		{Title: "First", URL: "https://one.example"},
	}}
	tool := NewSearchResultsTool(spy, logger.NewNop())

	out, err := tool.Execute(context.Background(), "{}")

	require.NoError(t, err)
	assert.Contains(t, out, `"title": "First"`)
	assert.Contains(t, out, `"url": "https://one.example"`)
}

func TestSearchResultsTool_EmptyIsNotAnError(t *testing.T) {
	tool := NewSearchResultsTool(&browserSpy{}, logger.NewNop())

	out, err := tool.Execute(context.Background(), "{}")

	require.NoError(t, err)
	assert.Equal(t, "No results found", out)
}

func TestPageFetchTool_PassesURL(t *testing.T) {
	spy := &browserSpy{}
	tool := NewPageFetchTool(spy, logger.NewNop())

	out, err := tool.Execute(context.Background(), `{"url":"https://go.dev"}`)

	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", spy.fetched)
	assert.Equal(t, "some page text", out)
}

func TestPageFetchTool_RequiresURL(t *testing.T) {
	tool := NewPageFetchTool(&browserSpy{}, logger.NewNop())

	_, err := tool.Execute(context.Background(), "{}")

	assert.ErrorContains(t, err, "url")
}

func TestScreenshotTool_ReturnsDataURL(t *testing.T) {
	tool := NewScreenshotTool(&browserSpy{}, logger.NewNop())

	out, err := tool.Execute(context.Background(), "{}")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))
}

func TestRequiredDeclarations(t *testing.T) {
	log := logger.NewNop()
	spy := &browserSpy{}

	search := NewWebSearchTool(spy, log)
	assert.Equal(t, []string{"query"}, search.Parameters()["required"])

	fetch := NewPageFetchTool(spy, log)
	assert.Equal(t, []string{"url"}, fetch.Parameters()["required"])

	launch := NewLaunchTool(spy, log)
	assert.Empty(t, launch.Parameters()["required"])
}

//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"testing"

	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/browser/rod"
	"research-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a local Chromium install. Run with:
//
//	go test -tags integration ./test/integration/...

func fileURL(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	return "file://" + abs
}

// localEngineProfile points the session at the search fixture page. The
// results container is rendered statically, so submitting the form reloads
// the same page and the selector wait succeeds.
func localEngineProfile(t *testing.T) rod.EngineProfile {
	p := rod.DuckDuckGoProfile()
	p.Name = "local"
	p.HomeURL = fileURL(t, "search_page.html")
	return p
}

func setupSession(t *testing.T, profile rod.EngineProfile) *rod.Session {
	t.Helper()
	cfg := rod.DefaultConfig()
	cfg.Headless = true

	s := rod.NewSession(cfg, profile, logger.NewNop())
	t.Cleanup(s.Close)

	require.NoError(t, s.Launch(context.Background()))
	return s
}

func TestSession_LaunchIsIdempotent(t *testing.T) {
	s := setupSession(t, localEngineProfile(t))

	require.NoError(t, s.Launch(context.Background()))
	assert.Equal(t, entity.SessionPageActive, s.State())
}

func TestSession_SearchFlowCapsResults(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t, localEngineProfile(t))

	require.NoError(t, s.OpenSearchEngine(ctx))
	require.NoError(t, s.Search(ctx, "anything"))

	results, err := s.SearchResults(ctx)
	require.NoError(t, err)

	// The fixture has seven results; the session must cap at five, in
	// document order.
	require.Len(t, results, 5)
	assert.Equal(t, "Result One", results[0].Title)
	assert.Equal(t, "https://example.com/one", results[0].URL)
	assert.Equal(t, "Result Five", results[4].Title)
}

func TestSession_FetchPagePrefersArticle(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t, localEngineProfile(t))

	text, err := s.FetchPage(ctx, fileURL(t, "article_page.html"))
	require.NoError(t, err)

	assert.Contains(t, text, "The History of Message Passing")
	// Text came from the article region, not the page chrome.
	assert.NotContains(t, text, "Home | About | Contact")
	assert.NotContains(t, text, "noise that must never appear")
	assert.LessOrEqual(t, len(text), rod.DefaultConfig().ContentBudget+32)
}

func TestSession_FetchInvalidatesSearchState(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t, localEngineProfile(t))

	require.NoError(t, s.OpenSearchEngine(ctx))
	require.NoError(t, s.Search(ctx, "anything"))

	_, err := s.FetchPage(ctx, fileURL(t, "article_page.html"))
	require.NoError(t, err)

	// Leaving the engine page means results are stale: extraction and a
	// fresh search must both be rejected until the engine is reopened.
	_, err = s.SearchResults(ctx)
	assert.ErrorIs(t, err, entity.ErrPrecondition)
	assert.ErrorIs(t, s.Search(ctx, "again"), entity.ErrPrecondition)
}

func TestSession_ClosedSessionRejectsOperations(t *testing.T) {
	s := setupSession(t, localEngineProfile(t))

	s.Close()
	require.Equal(t, entity.SessionClosed, s.State())

	assert.ErrorIs(t, s.OpenSearchEngine(context.Background()), entity.ErrPrecondition)
	_, err := s.FetchPage(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, entity.ErrPrecondition)
}

package rod

import (
	"context"
	"testing"

	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the session state machine without a real browser.
// Precondition checks must reject operations before any engine call, so a
// session that never launched (nil page, nil browser) must error, not panic.

func newTestSession() *Session {
	return NewSession(DefaultConfig(), DuckDuckGoProfile(), logger.NewNop())
}

func TestNewSession_StartsUninitialized(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, entity.SessionUninitialized, s.State())
}

func TestOperations_FailBeforeLaunch(t *testing.T) {
	ctx := context.Background()
	s := newTestSession()

	assert.ErrorIs(t, s.OpenSearchEngine(ctx), entity.ErrPrecondition)
	assert.ErrorIs(t, s.Search(ctx, "golang"), entity.ErrPrecondition)

	_, err := s.SearchResults(ctx)
	assert.ErrorIs(t, err, entity.ErrPrecondition)

	_, err = s.FetchPage(ctx, "https://example.com")
	assert.ErrorIs(t, err, entity.ErrPrecondition)

	_, err = s.Screenshot(ctx)
	assert.ErrorIs(t, err, entity.ErrPrecondition)

	assert.Equal(t, entity.SessionUninitialized, s.State())
}

func TestOperations_FailAfterClose(t *testing.T) {
	ctx := context.Background()
	s := newTestSession()

	s.Close()
	require.Equal(t, entity.SessionClosed, s.State())

	assert.ErrorIs(t, s.Launch(ctx), entity.ErrPrecondition)
	assert.ErrorIs(t, s.OpenSearchEngine(ctx), entity.ErrPrecondition)
	assert.ErrorIs(t, s.Search(ctx, "golang"), entity.ErrPrecondition)
}

func TestClose_Idempotent(t *testing.T) {
	s := newTestSession()

	s.Close()
	s.Close()

	assert.Equal(t, entity.SessionClosed, s.State())
}

func TestSearch_RequiresSearchEnginePage(t *testing.T) {
	s := newTestSession()
	// Page active, but no prior OpenSearchEngine: the flag check fires
	// before any element lookup, so a nil page is never touched.
	s.state = entity.SessionPageActive

	err := s.Search(context.Background(), "golang")

	assert.ErrorIs(t, err, entity.ErrPrecondition)
	assert.ErrorContains(t, err, "search engine page not opened")
}

func TestSearchResults_RequiresSubmittedSearch(t *testing.T) {
	s := newTestSession()
	s.state = entity.SessionPageActive
	s.onSearchEngine = true

	_, err := s.SearchResults(context.Background())

	assert.ErrorIs(t, err, entity.ErrPrecondition)
}

func TestDefaultConfig_Bounds(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5, cfg.MaxResults)
	assert.Equal(t, 2000, cfg.ContentBudget)
	assert.Equal(t, 200, cfg.MinContentLength)
	assert.Positive(t, cfg.NavTimeout)
	assert.Positive(t, cfg.FindTimeout)
}

func TestDuckDuckGoProfile_Complete(t *testing.T) {
	p := DuckDuckGoProfile()

	assert.NotEmpty(t, p.HomeURL)
	assert.NotEmpty(t, p.SearchBoxSelector)
	assert.NotEmpty(t, p.ResultsSelector)
	assert.NotEmpty(t, p.ResultsJS)
	assert.NotEmpty(t, p.ContentSelectors)
}

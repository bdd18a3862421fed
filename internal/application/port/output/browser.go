package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

// BrowserPort is the session-scoped tool surface exposed to the capability
// layer. Every operation other than Launch and Close requires an active page
// and returns entity.ErrPrecondition (wrapped) when the session is not in the
// required state; the underlying engine is never touched in that case.
type BrowserPort interface {
	// Launch spawns the browser and opens one page. Idempotent: calling it
	// on an already-active session is a no-op.
	Launch(ctx context.Context) error

	// OpenSearchEngine loads the configured search engine entry page and
	// waits for it to quiesce.
	OpenSearchEngine(ctx context.Context) error

	// Search submits a query on the search engine page. Requires a prior
	// OpenSearchEngine on this session.
	Search(ctx context.Context, query string) error

	// SearchResults scrapes the current results page, capped at the
	// configured maximum. Zero results is a valid empty slice, not an error.
	SearchResults(ctx context.Context) ([]entity.SearchResult, error)

	// FetchPage navigates to an arbitrary URL and returns readable page
	// text truncated to the configured character budget.
	FetchPage(ctx context.Context, url string) (string, error)

	// Screenshot captures the current page as a JPEG.
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	State() entity.SessionState

	// Close releases the page, browser and launcher. Best effort, safe to
	// call multiple times.
	Close()
}

package rod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"time"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/browser/content"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*Session)(nil)

// Session owns one browser process and one page for the lifetime of a
// research run. All operations check session state before touching the
// engine, so a forgetful caller gets entity.ErrPrecondition instead of a
// crash or a stray process.
type Session struct {
	cfg     Config
	profile EngineProfile
	logger  output.LoggerPort

	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	state entity.SessionState

	// onSearchEngine and searched gate Search and SearchResults on the
	// actual navigation history, not on oracle discipline.
	onSearchEngine bool
	searched       bool
}

type Config struct {
	Headless   bool
	NoSandbox  bool
	SlowMotion time.Duration

	// NavTimeout bounds page loads and idle waits; FindTimeout bounds
	// element lookups. Neither wait is ever indefinite.
	NavTimeout  time.Duration
	FindTimeout time.Duration

	// ContentBudget caps FetchPage output; MinContentLength is the
	// threshold a selector candidate must exceed to be chosen.
	ContentBudget    int
	MinContentLength int

	MaxResults int
}

func DefaultConfig() Config {
	return Config{
		Headless:         true,
		NoSandbox:        true,
		SlowMotion:       0,
		NavTimeout:       15 * time.Second,
		FindTimeout:      10 * time.Second,
		ContentBudget:    2000,
		MinContentLength: 200,
		MaxResults:       5,
	}
}

func NewSession(cfg Config, profile EngineProfile, logger output.LoggerPort) *Session {
	return &Session{
		cfg:     cfg,
		profile: profile,
		logger:  logger,
		state:   entity.SessionUninitialized,
	}
}

func (s *Session) State() entity.SessionState {
	return s.state
}

// Launch spawns the browser engine and opens a blank page. Calling it on an
// already-active session is a no-op, so the tool layer can always launch
// defensively before navigating.
func (s *Session) Launch(ctx context.Context) error {
	switch s.state {
	case entity.SessionLaunched, entity.SessionPageActive:
		return nil
	case entity.SessionClosed:
		return fmt.Errorf("launch: %w: session already closed", entity.ErrPrecondition)
	}

	l := launcher.New().
		Headless(s.cfg.Headless).
		NoSandbox(s.cfg.NoSandbox)

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrLaunch, err)
	}
	s.launcher = l

	browser := rod.New().
		Context(ctx).
		ControlURL(controlURL).
		SlowMotion(s.cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		s.releaseLauncher()
		return fmt.Errorf("%w: connect: %v", entity.ErrLaunch, err)
	}
	s.browser = browser
	s.state = entity.SessionLaunched

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		s.releaseLauncher()
		s.browser = nil
		s.state = entity.SessionUninitialized
		return fmt.Errorf("%w: open page: %v", entity.ErrLaunch, err)
	}
	s.page = page
	s.state = entity.SessionPageActive

	s.logger.Info("browser launched", "headless", s.cfg.Headless)
	return nil
}

// OpenSearchEngine loads the engine entry page and waits for it to quiesce.
func (s *Session) OpenSearchEngine(ctx context.Context) error {
	if err := s.requirePage("open search engine"); err != nil {
		return err
	}

	if err := s.navigate(ctx, s.profile.HomeURL); err != nil {
		return err
	}

	s.onSearchEngine = true
	s.searched = false
	s.logger.Info("search engine opened", "engine", s.profile.Name)
	return nil
}

// Search fills the query box and submits, then waits for the results
// container to render. Requires a prior OpenSearchEngine on this session.
func (s *Session) Search(ctx context.Context, query string) error {
	if err := s.requirePage("search"); err != nil {
		return err
	}
	if !s.onSearchEngine {
		return fmt.Errorf("search: %w: search engine page not opened", entity.ErrPrecondition)
	}

	page := s.page.Context(ctx)

	box, err := page.Timeout(s.cfg.FindTimeout).Element(s.profile.SearchBoxSelector)
	if err != nil {
		return fmt.Errorf("%w: search box not found: %v", entity.ErrInteraction, err)
	}

	if err := box.SelectAllText(); err == nil {
		_ = box.Input("")
	}
	if err := box.Input(query); err != nil {
		return fmt.Errorf("%w: typing query: %v", entity.ErrInteraction, err)
	}
	if err := box.Type(input.Enter); err != nil {
		return fmt.Errorf("%w: submitting query: %v", entity.ErrInteraction, err)
	}

	if _, err := page.Timeout(s.cfg.FindTimeout).Element(s.profile.ResultsSelector); err != nil {
		return fmt.Errorf("%w: results did not appear: %v", entity.ErrInteraction, err)
	}

	s.searched = true
	s.logger.Info("search submitted", "query", query)
	return nil
}

// SearchResults scrapes the current results page in document order, capped
// at MaxResults. Zero matches is a successful empty slice; only a page we
// cannot evaluate against counts as a failure.
func (s *Session) SearchResults(ctx context.Context) ([]entity.SearchResult, error) {
	if err := s.requirePage("extract search results"); err != nil {
		return nil, err
	}
	if !s.searched {
		return nil, fmt.Errorf("extract search results: %w: no search submitted", entity.ErrPrecondition)
	}

	obj, err := s.page.Context(ctx).Eval(s.profile.ResultsJS)
	if err != nil {
		return nil, fmt.Errorf("%w: results scrape: %v", entity.ErrExtraction, err)
	}

	var results []entity.SearchResult
	if err := json.Unmarshal([]byte(obj.Value.JSON("", "")), &results); err != nil {
		return nil, fmt.Errorf("%w: malformed results payload: %v", entity.ErrExtraction, err)
	}

	if len(results) > s.cfg.MaxResults {
		results = results[:s.cfg.MaxResults]
	}

	s.logger.Info("search results extracted", "count", len(results))
	return results, nil
}

// FetchPage navigates to an arbitrary URL and returns readable text: the
// first configured content selector whose text exceeds MinContentLength, or
// whole-page text as the last resort. Output is clamped to ContentBudget.
func (s *Session) FetchPage(ctx context.Context, url string) (string, error) {
	if err := s.requirePage("fetch page"); err != nil {
		return "", err
	}

	if err := s.navigate(ctx, url); err != nil {
		return "", err
	}
	// Leaving the engine page invalidates the search flow.
	s.onSearchEngine = false
	s.searched = false

	page := s.page.Context(ctx)

	for _, selector := range s.profile.ContentSelectors {
		el, err := page.Timeout(s.cfg.FindTimeout).Element(selector)
		if err != nil {
			continue
		}
		raw, err := el.HTML()
		if err != nil {
			continue
		}
		text := content.Text(raw)
		if len(text) > s.cfg.MinContentLength {
			s.logger.Info("page content extracted", "url", url, "selector", selector)
			return content.Truncate(text, s.cfg.ContentBudget), nil
		}
	}

	body, err := page.Timeout(s.cfg.FindTimeout).Element("body")
	if err != nil {
		return "", fmt.Errorf("%w: no body on page: %v", entity.ErrExtraction, err)
	}
	raw, err := body.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", entity.ErrExtraction, err)
	}

	s.logger.Info("page content extracted", "url", url, "selector", "body")
	return content.Truncate(content.Text(raw), s.cfg.ContentBudget), nil
}

// Screenshot captures the current page as a JPEG, downscaled so the oracle
// never receives an oversized image.
func (s *Session) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if err := s.requirePage("screenshot"); err != nil {
		return nil, err
	}

	imgBytes, err := s.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot: %v", entity.ErrExtraction, err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: image decode: %v", entity.ErrExtraction, err)
	}

	if img.Bounds().Dx() > 1024 {
		img = imaging.Resize(img, 1024, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("%w: jpeg encode: %v", entity.ErrExtraction, err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// Close releases page, browser and launcher in that order. Safe to call
// multiple times and on sessions that never launched.
func (s *Session) Close() {
	if s.state == entity.SessionClosed {
		return
	}

	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		_ = s.browser.Close()
		s.browser = nil
	}
	s.releaseLauncher()

	s.state = entity.SessionClosed
	s.onSearchEngine = false
	s.searched = false
	s.logger.Info("browser session closed")
}

func (s *Session) navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)

	if err := page.Timeout(s.cfg.NavTimeout).Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %v", entity.ErrNavigation, url, err)
	}
	if err := page.Timeout(s.cfg.NavTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %s did not finish loading: %v", entity.ErrNavigation, url, err)
	}
	// Quiescence is bounded; a page that never settles is reported, not
	// waited on forever.
	if err := page.WaitIdle(s.cfg.NavTimeout); err != nil {
		return fmt.Errorf("%w: %s did not quiesce: %v", entity.ErrNavigation, url, err)
	}
	return nil
}

func (s *Session) requirePage(op string) error {
	if s.state == entity.SessionPageActive {
		return nil
	}
	return fmt.Errorf("%s: %w: session is %s", op, entity.ErrPrecondition, s.state)
}

func (s *Session) releaseLauncher() {
	if s.launcher == nil {
		return
	}
	s.launcher.Kill()
	s.launcher.Cleanup()
	s.launcher = nil
}

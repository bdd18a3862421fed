package tool

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

// One ToolPort per browser-session operation. Descriptions are written for
// the oracle: they are the only documentation it sees when choosing a tool.

func noParams() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
		"required":   []string{},
	}
}

type LaunchTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewLaunchTool(browser output.BrowserPort, logger output.LoggerPort) *LaunchTool {
	return &LaunchTool{browser: browser, logger: logger}
}

func (t *LaunchTool) Name() entity.ToolName { return entity.ToolBrowserLaunch }
func (t *LaunchTool) Description() string {
	return "Starts the browser session. Must be called once before any other browser tool. Calling it again is harmless."
}
func (t *LaunchTool) Parameters() map[string]interface{} { return noParams() }

func (t *LaunchTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.browser.Launch(ctx); err != nil {
		return "", err
	}
	return "Browser session is running", nil
}

type OpenSearchEngineTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewOpenSearchEngineTool(browser output.BrowserPort, logger output.LoggerPort) *OpenSearchEngineTool {
	return &OpenSearchEngineTool{browser: browser, logger: logger}
}

func (t *OpenSearchEngineTool) Name() entity.ToolName { return entity.ToolSearchEngineOpen }
func (t *OpenSearchEngineTool) Description() string {
	return "Opens the search engine start page. Required before web_search."
}
func (t *OpenSearchEngineTool) Parameters() map[string]interface{} { return noParams() }

func (t *OpenSearchEngineTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.browser.OpenSearchEngine(ctx); err != nil {
		return "", err
	}
	return "Search engine page is open", nil
}

type WebSearchTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewWebSearchTool(browser output.BrowserPort, logger output.LoggerPort) *WebSearchTool {
	return &WebSearchTool{browser: browser, logger: logger}
}

func (t *WebSearchTool) Name() entity.ToolName { return entity.ToolWebSearch }
func (t *WebSearchTool) Description() string {
	return "Submits a query on the open search engine page. Follow with search_results to read the results."
}
func (t *WebSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query text",
			},
		},
		"required": []string{"query"},
	}
}

func (t *WebSearchTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if input.Query == "" {
		return "", fmt.Errorf("query must not be empty")
	}
	if err := t.browser.Search(ctx, input.Query); err != nil {
		return "", err
	}
	return fmt.Sprintf("Search submitted for %q, results are ready", input.Query), nil
}

type SearchResultsTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewSearchResultsTool(browser output.BrowserPort, logger output.LoggerPort) *SearchResultsTool {
	return &SearchResultsTool{browser: browser, logger: logger}
}

func (t *SearchResultsTool) Name() entity.ToolName { return entity.ToolSearchResults }
func (t *SearchResultsTool) Description() string {
	return "Reads the current search results as a JSON list of {title, url}, at most five entries."
}
func (t *SearchResultsTool) Parameters() map[string]interface{} { return noParams() }

func (t *SearchResultsTool) Execute(ctx context.Context, args string) (string, error) {
	results, err := t.browser.SearchResults(ctx)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "No results found", nil
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding results: %w", err)
	}
	return string(data), nil
}

type PageFetchTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewPageFetchTool(browser output.BrowserPort, logger output.LoggerPort) *PageFetchTool {
	return &PageFetchTool{browser: browser, logger: logger}
}

func (t *PageFetchTool) Name() entity.ToolName { return entity.ToolPageFetch }
func (t *PageFetchTool) Description() string {
	return "Navigates to a URL and returns its readable text content, truncated to a fixed budget."
}
func (t *PageFetchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Full URL including protocol (https:// or http://)",
			},
		},
		"required": []string{"url"},
	}
}

func (t *PageFetchTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if input.URL == "" {
		return "", fmt.Errorf("url must not be empty")
	}
	text, err := t.browser.FetchPage(ctx, input.URL)
	if err != nil {
		return "", err
	}
	return text, nil
}

type ScreenshotTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewScreenshotTool(browser output.BrowserPort, logger output.LoggerPort) *ScreenshotTool {
	return &ScreenshotTool{browser: browser, logger: logger}
}

func (t *ScreenshotTool) Name() entity.ToolName { return entity.ToolScreenshot }
func (t *ScreenshotTool) Description() string {
	return "Captures the current page as a JPEG screenshot, returned as a data URL."
}
func (t *ScreenshotTool) Parameters() map[string]interface{} { return noParams() }

func (t *ScreenshotTool) Execute(ctx context.Context, args string) (string, error) {
	shot, err := t.browser.Screenshot(ctx)
	if err != nil {
		return "", err
	}
	b64 := base64.StdEncoding.EncodeToString(shot.Data)
	return fmt.Sprintf("data:image/%s;base64,%s", shot.Format, b64), nil
}

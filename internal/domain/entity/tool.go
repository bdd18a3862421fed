package entity

type ToolName string

const (
	ToolBrowserLaunch    ToolName = "browser_launch"
	ToolSearchEngineOpen ToolName = "search_engine_open"
	ToolWebSearch        ToolName = "web_search"
	ToolSearchResults    ToolName = "search_results"
	ToolPageFetch        ToolName = "page_fetch"
	ToolScreenshot       ToolName = "browser_screenshot"
)

func (t ToolName) String() string {
	return string(t)
}

// ToolDefinition is the oracle-facing description of one capability.
// Immutable once registered; Name is unique within a registry.
type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is one invocation request produced by the decision oracle.
// Arguments is the raw JSON object the oracle supplied.
type ToolCall struct {
	ID        string
	Name      ToolName
	Arguments string
}

// ToolResult reports the outcome of one dispatched call. Failures are data,
// not propagated faults: Success=false with Error set, never a Go error
// crossing the orchestration boundary.
type ToolResult struct {
	CallID  string
	Name    ToolName
	Success bool
	Content string
	Error   string
}

// Observation is the result text as the oracle sees it: the payload on
// success, an error marker otherwise.
func (r ToolResult) Observation() string {
	if r.Success {
		return r.Content
	}
	return "Error: " + r.Error
}

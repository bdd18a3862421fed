package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

// ToolPort is one named capability exposed to the oracle. Parameters returns
// the JSON-schema object describing the expected arguments.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, arguments string) (string, error)
}

// ToolRegistry holds the capability catalog and is the single fault boundary
// for tool execution: Dispatch converts every lower-layer failure, including
// unknown names and malformed arguments, into a ToolResult the oracle can
// reason about.
type ToolRegistry interface {
	Register(tool ToolPort) error
	Get(name entity.ToolName) (ToolPort, bool)
	Definitions() []entity.ToolDefinition
	Dispatch(ctx context.Context, call entity.ToolCall) entity.ToolResult
}

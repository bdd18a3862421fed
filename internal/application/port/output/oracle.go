package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

// OraclePort is the decision engine contract. Given the full conversation
// history and the capability catalog it returns either a final textual answer
// or a batch of tool calls to execute, never both interpreted at once: tool
// calls take precedence when present.
type OraclePort interface {
	Decide(ctx context.Context, req DecideRequest) (*Decision, error)
}

type DecideRequest struct {
	History []entity.Turn
	Catalog []entity.ToolDefinition
}

// Decision is the oracle's response for one step. When ToolCalls is empty,
// FinalAnswer holds the terminal reply; otherwise FinalAnswer carries any
// commentary that accompanied the calls.
type Decision struct {
	FinalAnswer string
	ToolCalls   []entity.ToolCall
}

func (d *Decision) IsFinal() bool {
	return len(d.ToolCalls) == 0
}

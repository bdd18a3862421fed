package input

import (
	"context"

	"research-agent/internal/domain/entity"
)

type ResearchResult struct {
	FinalAnswer string
	Steps       int
}

// Researcher is the caller-facing surface: run one instruction to completion
// and expose the transcript afterwards for audit or display.
type Researcher interface {
	Run(ctx context.Context, instruction string) (*ResearchResult, error)
	Transcript() []entity.Turn
}

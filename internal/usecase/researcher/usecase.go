package researcher

import (
	"context"
	"errors"
	"fmt"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ input.Researcher = (*UseCase)(nil)

// ErrNoFinalAnswer reports that the step budget ran out before the oracle
// produced a final answer. This is an explicit outcome, never a silent
// truncation.
var ErrNoFinalAnswer = errors.New("step budget exhausted without a final answer")

const (
	DefaultMaxSteps = 10

	// maxObservationLen clamps tool output before it enters the transcript
	// so one oversized page cannot blow up the oracle's context.
	maxObservationLen = 20000
)

// UseCase drives one research run: oracle decision, ordered tool dispatch,
// transcript accumulation, repeat. The loop never second-guesses which tools
// the oracle picked or in what order; its job is faithful execution and
// faithful history.
type UseCase struct {
	oracle  output.OraclePort
	tools   output.ToolRegistry
	browser output.BrowserPort
	logger  output.LoggerPort

	maxSteps   int
	transcript *entity.Transcript
}

// New builds a single-run use case. The browser session is owned by the run:
// Run closes it on every exit path, so a UseCase must not be reused.
func New(
	oracle output.OraclePort,
	tools output.ToolRegistry,
	browser output.BrowserPort,
	logger output.LoggerPort,
	maxSteps int,
) *UseCase {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &UseCase{
		oracle:     oracle,
		tools:      tools,
		browser:    browser,
		logger:     logger,
		maxSteps:   maxSteps,
		transcript: entity.NewTranscript(),
	}
}

func (uc *UseCase) Run(ctx context.Context, instruction string) (*input.ResearchResult, error) {
	// The session is released exactly once regardless of how the loop
	// ends: final answer, fatal oracle error, budget exhaustion or
	// cancellation.
	defer uc.browser.Close()

	uc.transcript.Append(entity.UserTurn(instruction))
	catalog := uc.tools.Definitions()

	for step := 1; step <= uc.maxSteps; step++ {
		// Cancellation is observed at iteration boundaries so an
		// in-flight tool call is never cut off mid-mutation.
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run canceled at step %d: %w", step, err)
		}

		uc.logger.Debug("starting step", "step", step)

		decision, err := uc.oracle.Decide(ctx, output.DecideRequest{
			History: uc.transcript.Turns(),
			Catalog: catalog,
		})
		if err != nil {
			// Oracle communication failures are fatal to the run.
			return nil, fmt.Errorf("oracle decision failed at step %d: %w", step, err)
		}

		if decision.IsFinal() {
			uc.transcript.Append(entity.OracleTurn(decision.FinalAnswer))
			uc.logger.Info("research complete", "steps", step)
			return &input.ResearchResult{
				FinalAnswer: decision.FinalAnswer,
				Steps:       step,
			}, nil
		}

		uc.transcript.Append(entity.ToolCallTurn(decision.FinalAnswer, decision.ToolCalls))

		// Sequential, oracle-specified order: later calls in a batch may
		// depend on session state mutated by earlier ones.
		results := make([]entity.ToolResult, 0, len(decision.ToolCalls))
		for _, call := range decision.ToolCalls {
			uc.logger.Info("dispatching tool", "tool", call.Name, "args", call.Arguments)
			result := uc.tools.Dispatch(ctx, call)
			result.Content = clamp(result.Content)
			if !result.Success {
				uc.logger.Warn("tool failed", "tool", call.Name, "error", result.Error)
			}
			results = append(results, result)
		}
		uc.transcript.Append(entity.ToolResultTurn(results))
	}

	return nil, fmt.Errorf("%w after %d steps", ErrNoFinalAnswer, uc.maxSteps)
}

// Transcript exposes the run history for audit or display.
func (uc *UseCase) Transcript() []entity.Turn {
	return uc.transcript.Turns()
}

func clamp(s string) string {
	if len(s) > maxObservationLen {
		return s[:maxObservationLen] + "\n... (truncated)"
	}
	return s
}

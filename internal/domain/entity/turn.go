package entity

// TurnKind tags one unit of conversation history.
type TurnKind string

const (
	TurnUser        TurnKind = "user"
	TurnOracle      TurnKind = "oracle"
	TurnToolCalls   TurnKind = "tool_calls"
	TurnToolResults TurnKind = "tool_results"
)

// Turn is one entry of the run transcript. Exactly one of the payload fields
// is meaningful for a given kind: Text for user and oracle turns, Calls for a
// tool-call batch, Results for a tool-result batch. A tool-call batch may also
// carry the assistant commentary that accompanied the calls in Text.
type Turn struct {
	Kind    TurnKind
	Text    string
	Calls   []ToolCall
	Results []ToolResult
}

func UserTurn(text string) Turn {
	return Turn{Kind: TurnUser, Text: text}
}

func OracleTurn(text string) Turn {
	return Turn{Kind: TurnOracle, Text: text}
}

func ToolCallTurn(commentary string, calls []ToolCall) Turn {
	return Turn{Kind: TurnToolCalls, Text: commentary, Calls: calls}
}

func ToolResultTurn(results []ToolResult) Turn {
	return Turn{Kind: TurnToolResults, Results: results}
}

// Transcript is the append-only conversation log of a run. It is the oracle's
// entire memory: turns are never edited or removed, and insertion order is
// semantically significant.
type Transcript struct {
	turns []Turn
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(turn Turn) {
	t.turns = append(t.turns, turn)
}

// Turns returns a copy of the log so callers cannot mutate history in place.
// The Calls and Results slices are copied per turn as well, so editing an
// element of the snapshot never reaches the recorded batch.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	for i, turn := range t.turns {
		if len(turn.Calls) > 0 {
			turn.Calls = append([]ToolCall(nil), turn.Calls...)
		}
		if len(turn.Results) > 0 {
			turn.Results = append([]ToolResult(nil), turn.Results...)
		}
		out[i] = turn
	}
	return out
}

func (t *Transcript) Len() int {
	return len(t.turns)
}

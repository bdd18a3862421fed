package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

// ToolRegistryImpl maps capability names to handlers and converts every
// dispatch failure into result data. Registration order is preserved so the
// oracle sees a stable catalog.
type ToolRegistryImpl struct {
	tools map[entity.ToolName]output.ToolPort
	order []entity.ToolName
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolName]output.ToolPort),
	}
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) error {
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	result := make([]entity.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}

// Dispatch executes one oracle-requested call. Unknown names, schema
// mismatches, handler errors and handler panics all come back as a failed
// ToolResult; no fault crosses this boundary.
func (r *ToolRegistryImpl) Dispatch(ctx context.Context, call entity.ToolCall) (result entity.ToolResult) {
	result = entity.ToolResult{
		CallID: call.ID,
		Name:   call.Name,
	}

	tool, ok := r.tools[call.Name]
	if !ok {
		result.Error = "unknown tool"
		return result
	}

	if missing := missingRequired(tool.Parameters(), call.Arguments); len(missing) > 0 {
		result.Error = fmt.Sprintf("missing required arguments: %s", strings.Join(missing, ", "))
		return result
	}

	defer func() {
		if rec := recover(); rec != nil {
			result.Success = false
			result.Content = ""
			result.Error = fmt.Sprintf("tool %s failed unexpectedly", call.Name)
		}
	}()

	content, err := tool.Execute(ctx, call.Arguments)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.Content = content
	return result
}

// missingRequired checks the oracle-supplied arguments against the tool's
// JSON-schema required list. An unparsable argument object counts as all
// required fields missing.
func missingRequired(schema map[string]interface{}, arguments string) []string {
	required := requiredFields(schema)
	if len(required) == 0 {
		return nil
	}

	present := map[string]json.RawMessage{}
	if arguments != "" {
		// Parse failure leaves present empty, reporting all required fields.
		_ = json.Unmarshal([]byte(arguments), &present)
	}

	var missing []string
	for _, field := range required {
		if _, ok := present[field]; !ok {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

func requiredFields(schema map[string]interface{}) []string {
	raw, ok := schema["required"]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		fields := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				fields = append(fields, s)
			}
		}
		return fields
	default:
		return nil
	}
}

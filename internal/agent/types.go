package agent

import (
	"context"
	"fmt"

	"repo-event-relay/pkg/llmprovider"
)

// Kind classifies a tool for dispatch routing.
type Kind int

const (
	KindUnknown Kind = iota
	KindRepoQuery
	KindRepoAction
	KindNotify
)

func (k Kind) String() string {
	switch k {
	case KindRepoQuery:
		return "repo_query"
	case KindRepoAction:
		return "repo_action"
	case KindNotify:
		return "notify"
	default:
		return "unknown"
	}
}

// IsRepo reports whether the kind belongs to the repository tool set.
func (k Kind) IsRepo() bool {
	return k == KindRepoQuery || k == KindRepoAction
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindRepoQuery || k == KindRepoAction || k == KindNotify
}

// Tool represents an agent tool that can be called by LLM.
type Tool interface {
	// Name returns the tool name (used in function calling).
	Name() string

	// Description returns what the tool does (for LLM).
	Description() string

	// Parameters returns JSON schema for tool parameters.
	Parameters() map[string]interface{}

	// Kind returns the tool set the tool belongs to.
	Kind() Kind

	// Execute runs the tool with given parameters.
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// ToolRegistry manages available tools. It is filled at startup and read-only afterwards.
type ToolRegistry struct {
	tools map[string]Tool
	order []string
}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. Empty or duplicate names and unknown kinds are rejected.
func (r *ToolRegistry) Register(tool Tool) error {
	name := tool.Name()
	if name == "" {
		return ErrEmptyToolName
	}
	if !tool.Kind().Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers every tool and panics on the first invalid one.
func (r *ToolRegistry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// KindOf returns the kind of a registered tool, or KindUnknown.
func (r *ToolRegistry) KindOf(name string) Kind {
	if tool, ok := r.tools[name]; ok {
		return tool.Kind()
	}
	return KindUnknown
}

// List returns all registered tools in registration order.
func (r *ToolRegistry) List() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// ToFunctionDefinitions converts tools to LLM function calling format.
func (r *ToolRegistry) ToFunctionDefinitions() []llmprovider.Tool {
	tools := make([]llmprovider.Tool, 0, len(r.order))
	for _, tool := range r.List() {
		tools = append(tools, llmprovider.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return tools
}

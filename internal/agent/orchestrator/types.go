package orchestrator

// State is a Dispatch Loop state.
type State string

const (
	StatePlanning          State = "planning"
	StateRunningRepoTool   State = "running_repo_tool"
	StateRunningNotifyTool State = "running_notify_tool"
	StateDone              State = "done"
)

// Role of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolInvocationRequest is one tool call requested by the planner or synthesized by a caller.
type ToolInvocationRequest struct {
	ID   string
	Name string
	Args map[string]interface{}
}

// Turn is one message of a conversation. Tool turns carry the ToolCallID of the request they answer.
type Turn struct {
	Role       Role
	Content    string
	ToolCalls  []ToolInvocationRequest
	ToolCallID string
	Name       string
}

// PlannerOutput is either a final answer (no Requests) or a set of tool requests.
type PlannerOutput struct {
	Text     string
	Requests []ToolInvocationRequest
}

// IsFinal reports whether the planner produced a final answer.
func (o PlannerOutput) IsFinal() bool {
	return len(o.Requests) == 0
}

// Result is the outcome of one Run.
type Result struct {
	Text   string
	Rounds int
	State  State
	Turns  []Turn
}

// ToolResult returns the content of the last tool turn produced by the named tool.
func (r Result) ToolResult(name string) (string, bool) {
	for i := len(r.Turns) - 1; i >= 0; i-- {
		if r.Turns[i].Role == RoleTool && r.Turns[i].Name == name {
			return r.Turns[i].Content, true
		}
	}
	return "", false
}

// Options configures an Orchestrator.
type Options struct {
	MaxRounds    int
	SystemPrompt string
}

// HumanTurn builds a human turn.
func HumanTurn(text string) Turn {
	return Turn{Role: RoleHuman, Content: text}
}

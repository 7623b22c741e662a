package orchestrator

// Log prefixes
const (
	LogPrefixRun    = "internal.agent.orchestrator.Run"
	LogPrefixInvoke = "internal.agent.orchestrator.Invoke"
	LogPrefixPlan   = "internal.agent.orchestrator.LLMPlanner.Plan"
)

// System prompt
const (
	SystemPromptAgent = "You are an assistant that helps with GitHub and slack workflows. " +
		"Use GitHub tools for repo queries and slack tools for team notifications."
)

// Result texts surfaced to the caller or the planner
const (
	MsgUnknownTool     = "❌ unknown tool: %s"
	MsgToolFailed      = "❌ %v"
	MsgDeferredNotify  = "skipped: repository tools run first, request again if still needed"
	MsgRoundLimit      = "❌ Stopped after %d planning rounds without a final answer."
	MsgNoLLMConfigured = "❌ no LLM provider configured"
)

// Log messages
const (
	LogMsgRound        = "%s: round %d/%d state=%s requests=%d"
	LogMsgDone         = "%s: done after %d round(s)"
	LogMsgCallingTool  = "%s: calling tool %s (id=%s) with args: %+v"
	LogMsgToolFailed   = "%s: tool %s failed: %v"
	LogMsgUnknownTool  = "%s: planner requested unknown tool %s"
	LogMsgDeferredTool = "%s: deferring notify tool %s behind repository tools"
	LogMsgRoundLimit   = "%s: exceeded max rounds (%d)"
)

// Configuration
const (
	DefaultMaxRounds = 10
)

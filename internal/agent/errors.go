package agent

import "errors"

var (
	ErrEmptyToolName = errors.New("tool name is empty")
	ErrDuplicateTool = errors.New("tool already registered")
	ErrUnknownKind   = errors.New("tool has no known kind")
)

package engine

import (
	"errors"
	"fmt"
)

// Tool identifies one of the two extruders.
type Tool int

// NoTool is the state before the stream has selected any tool.
const NoTool Tool = -1

// ErrUnknownTool is returned when a tool id has no axis or complement.
var ErrUnknownTool = errors.New("unknown tool")

// ToolError carries the offending id.
type ToolError struct{ Tool Tool }

func (e *ToolError) Error() string { return fmt.Sprintf("unknown tool %d", int(e.Tool)) }
func (e *ToolError) Unwrap() error { return ErrUnknownTool }

var toolAxes = [...]string{"A", "B"}

// Axis is the extruder axis letter driven by t.
func (t Tool) Axis() (string, error) {
	if t < 0 || int(t) >= len(toolAxes) {
		return "", &ToolError{Tool: t}
	}
	return toolAxes[t], nil
}

// Complement is the other extruder.
func (t Tool) Complement() (Tool, error) {
	switch t {
	case 0:
		return 1, nil
	case 1:
		return 0, nil
	}
	return NoTool, &ToolError{Tool: t}
}

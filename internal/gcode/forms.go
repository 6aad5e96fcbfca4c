package gcode

import "fmt"

// Blank replaces a line that must keep its slot but say nothing.
const Blank = "\n"

// ToolSelect selects an extruder.
func ToolSelect(tool int) string { return fmt.Sprintf("M135 T%d\n", tool) }

// ZeroAxis resets an axis position register to zero.
func ZeroAxis(axis string) string { return fmt.Sprintf("G92 %s0\n", axis) }

// Move is a linear move of a single axis at feedrate.
func Move(feedrate float64, axis string, pos float64) string {
	return fmt.Sprintf("G1 F%f %s%f\n", feedrate, axis, pos)
}

// PrimeBlock pushes distance mm of filament through tool's axis and then
// selects resume, so the block leaves the stream on the tool it found.
func PrimeBlock(tool int, axis string, feedrate, distance float64, resume int) []string {
	return []string{
		ToolSelect(tool),
		ZeroAxis(axis),
		Move(feedrate, axis, distance),
		ZeroAxis(axis),
		ToolSelect(resume),
	}
}

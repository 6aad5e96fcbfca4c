// internal/clibase/usage.go
package clibase

import (
	"fmt"
	"strings"

	"dualretract/internal/version"
)

// Header is the shared top of every long help text.
func Header(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s – dual-extrusion gcode post-processor\n\n", name)
	fmt.Fprintln(&b, "License: MIT")
	fmt.Fprintf(&b, "Version: %s\n", version.Version)
	return b.String()
}

// Long joins the header with a command description.
func Long(name, body string) string {
	return Header(name) + "\n" + strings.TrimSpace(body)
}

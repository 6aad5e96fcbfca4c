// cmd/dualretract/main.go
package main

import (
	"dualretract/internal/app"
	"dualretract/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}

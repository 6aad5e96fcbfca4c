// internal/version/version.go
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X dualretract/internal/version.Version=1.2.0" ./cmd/dualretract
var Version = "dev"

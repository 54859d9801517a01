// filepath: cmd/voicejournal/main.go
package main

import (
	"voicejournal/internal/cli"
)

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}

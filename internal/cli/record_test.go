// filepath: internal/cli/record_test.go
package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnterPressed(t *testing.T) {
	prev := recordDuration
	t.Cleanup(func() { recordDuration = prev })

	t.Run("Terminal", func(t *testing.T) {
		recordDuration = 0
		out := captureOutput(t)
		enter := enterPressed(strings.NewReader("\n"), true)
		select {
		case <-enter:
		case <-time.After(time.Second):
			t.Fatal("Enter was not detected")
		}
		assert.Contains(t, out.String(), "press Enter")
	})

	t.Run("Closed Stdin Does Not Stop", func(t *testing.T) {
		recordDuration = 0
		out := captureOutput(t)
		assert.Nil(t, enterPressed(strings.NewReader(""), false))
		assert.Contains(t, out.String(), "SIGINT")
	})

	t.Run("Fixed Duration", func(t *testing.T) {
		recordDuration = 90 * time.Second
		out := captureOutput(t)
		assert.Nil(t, enterPressed(strings.NewReader(""), true))
		assert.Contains(t, out.String(), "1m30s")
	})
}

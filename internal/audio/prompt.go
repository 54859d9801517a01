// filepath: internal/audio/prompt.go
package audio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when there is no terminal to ask on.
var ErrNotInteractive = errors.New("no interactive terminal available")

// TerminalPrompter asks on a TTY. Non-interactive input is treated as a denial.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

func (p *TerminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if p.In == nil || !term.IsTerminal(int(p.In.Fd())) {
		return false, ErrNotInteractive
	}
	fmt.Fprintf(p.Out, "%s [y/N]: ", question)

	answer := make(chan string, 1)
	errc := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if err != nil && line == "" {
			errc <- err
			return
		}
		answer <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errc:
		return false, fmt.Errorf("could not read answer: %w", err)
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// StaticPrompter always answers the same way.
type StaticPrompter bool

func (s StaticPrompter) Confirm(context.Context, string) (bool, error) { return bool(s), nil }

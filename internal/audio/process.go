// filepath: internal/audio/process.go
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"voicejournal/internal/logging"
)

const stopTimeout = 5 * time.Second

// execProcess wraps an exec.Cmd so that Wait can be called from several goroutines.
type execProcess struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	quit  string // written to stdin to request a graceful exit, if set

	done    chan struct{}
	waitErr error

	mu      sync.Mutex
	stopped bool
}

func startProcess(cmd *exec.Cmd, quit string) (*execProcess, error) {
	p := &execProcess{cmd: cmd, quit: quit, done: make(chan struct{})}
	if quit != "" {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("could not open stdin: %w", err)
		}
		p.stdin = stdin
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func (p *execProcess) Wait() error {
	<-p.done
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped {
		return nil
	}
	return p.waitErr
}

func (p *execProcess) Stop() error {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	default:
	}

	// Paused processes must be running again to see the stop request.
	_ = continueProcess(p.cmd.Process)

	if p.stdin != nil {
		if _, err := io.WriteString(p.stdin, p.quit); err != nil {
			logging.Log.Debugf("Could not write quit command to pid %d: %v", p.cmd.Process.Pid, err)
		}
		_ = p.stdin.Close()
	} else if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		logging.Log.Debugf("Could not interrupt pid %d: %v", p.cmd.Process.Pid, err)
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(stopTimeout):
		logging.Log.Warnf("Process %d did not exit after %s, killing it", p.cmd.Process.Pid, stopTimeout)
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("could not kill process: %w", err)
		}
		<-p.done
		return nil
	}
}

func (p *execProcess) Pause() error  { return pauseProcess(p.cmd.Process) }
func (p *execProcess) Resume() error { return continueProcess(p.cmd.Process) }

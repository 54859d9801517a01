// filepath: internal/audio/signal_unix.go
//go:build unix

package audio

import (
	"os"

	"golang.org/x/sys/unix"
)

func pauseProcess(p *os.Process) error {
	return p.Signal(unix.SIGSTOP)
}

func continueProcess(p *os.Process) error {
	return p.Signal(unix.SIGCONT)
}

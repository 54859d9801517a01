// filepath: internal/audio/signal_other.go
//go:build !unix

package audio

import "os"

func pauseProcess(*os.Process) error    { return ErrNotSupported }
func continueProcess(*os.Process) error { return ErrNotSupported }

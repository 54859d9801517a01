// filepath: internal/storage/space_other.go
//go:build !unix

package storage

import "errors"

func freeBytes(dir string) (int64, error) {
	return 0, errors.New("free space query is not supported on this platform")
}

// filepath: internal/shared/methods.go
package shared

import "fmt"

const bytesPerMB = 1024 * 1024

// BytesToMB converts a byte count to whole megabytes, rounding down.
func BytesToMB(b int64) int64 {
	if b <= 0 {
		return 0
	}
	return b / bytesPerMB
}

// FormatBytes renders a byte count in a human-readable unit.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

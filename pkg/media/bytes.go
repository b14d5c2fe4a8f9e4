package media

import "fmt"

const (
	bytesPerKB = 1024.0
	bytesPerMB = 1024.0 * 1024.0
	bytesPerGB = 1024.0 * 1024.0 * 1024.0
)

// DisplayBytes formats a byte quantity for humans, e.g. "69.02 MB".
// Values under a kilobyte are shown as whole bytes.
func DisplayBytes(n int64) string {
	value := float64(n)
	abs := value
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < bytesPerKB:
		return fmt.Sprintf("%.0f bytes", value)
	case abs < bytesPerMB:
		return fmt.Sprintf("%.2f kB", value/bytesPerKB)
	case abs < bytesPerGB:
		return fmt.Sprintf("%.2f MB", value/bytesPerMB)
	default:
		return fmt.Sprintf("%.2f GB", value/bytesPerGB)
	}
}

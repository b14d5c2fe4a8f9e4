package media

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// BlankMode controls when the blanking-factor calculation applies for
// rewritable media: every day, or only at the start of the backup week.
type BlankMode string

const (
	BlankDaily  BlankMode = "daily"
	BlankWeekly BlankMode = "weekly"
)

// ParseBlankMode validates a configured blank mode.
func ParseBlankMode(name string) (BlankMode, error) {
	switch BlankMode(name) {
	case BlankDaily, BlankWeekly:
		return BlankMode(name), nil
	}
	return "", fmt.Errorf("unknown blank mode %q", name)
}

// BlankBehavior is the optimized-reuse policy for rewritable media.
type BlankBehavior struct {
	Mode   BlankMode
	Factor float64
}

// ShouldBlank decides whether rewritable media should be blanked
// before writing, using the ratio
//
//	ratio = bytesAvailable / (1 + bytesRequired)
//
// The media is blanked when ratio <= factor. The 1+x denominator keeps
// the division defined when nothing is required, and the ratio form
// builds in a safety margin proportional to the configured factor
// rather than a bare "does it fit" test.
func ShouldBlank(bytesAvailable, bytesRequired int64, factor float64) bool {
	ratio := float64(bytesAvailable) / (1.0 + float64(bytesRequired))
	blank := ratio <= factor
	log.Debug().
		Float64("ratio", ratio).
		Float64("factor", factor).
		Bool("blank", blank).
		Msg("evaluated blanking ratio")
	return blank
}

// NeedNewDisc decides whether the disc should be treated as new
// (blanked) for this write. Rebuilding always starts fresh. Without a
// configured behavior the disc starts fresh at the start of the week.
// With a configured behavior, the ratio test runs daily or at week
// start depending on the mode; bytesAvailable is what is left on the
// current media and bytesRequired the projected size of a full week.
func NeedNewDisc(rebuild, todayIsStart bool, behavior *BlankBehavior, bytesAvailable, bytesRequired int64) bool {
	if rebuild {
		return true
	}
	if behavior == nil {
		return todayIsStart
	}
	if behavior.Mode == BlankDaily || (behavior.Mode == BlankWeekly && todayIsStart) {
		return ShouldBlank(bytesAvailable, bytesRequired, behavior.Factor)
	}
	return false
}

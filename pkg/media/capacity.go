// Package media holds the capacity arithmetic for optical media: the
// nominal capacity table, the cushion calculation and the blanking
// decision for rewritable discs.
package media

import "fmt"

// Nominal capacities in bytes by media type name. CD capacities are
// derived from the sector counts of 74 and 80 minute discs (2048 bytes
// per sector), DVD capacities from the usual 4.4 GB figure.
var capacities = map[string]int64{
	"cdr-74":  332800 * 2048,
	"cdrw-74": 332800 * 2048,
	"cdr-80":  358400 * 2048,
	"cdrw-80": 358400 * 2048,
	"dvd+r":   4724464025,
	"dvd+rw":  4724464025,
}

// Capacity returns the nominal capacity in bytes for a media type.
func Capacity(mediaType string) (int64, error) {
	capacity, ok := capacities[mediaType]
	if !ok {
		return 0, fmt.Errorf("unknown media type %q", mediaType)
	}
	return capacity, nil
}

// UsableCapacity converts a nominal capacity and a cushion percentage
// into usable bytes. The cushion sets aside a safety margin, so a 4%
// cushion leaves 96% of the nominal capacity. Cushions below 0 or at
// or above 100 are rejected.
func UsableCapacity(nominal int64, cushionPct float64) (int64, error) {
	if cushionPct < 0 || cushionPct >= 100 {
		return 0, fmt.Errorf("cushion percentage %.2f is outside [0, 100)", cushionPct)
	}
	if nominal < 0 {
		return 0, fmt.Errorf("nominal capacity %d is negative", nominal)
	}
	return int64(float64(nominal) * ((100.0 - cushionPct) / 100.0)), nil
}

package view

import (
	"fmt"
	"strings"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with the largest unit that keeps the
// mantissa at or above one, capped at GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// Tier is a similarity badge colour band.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierOrange Tier = "orange"
	TierRed    Tier = "red"
)

var tierColors = map[Tier]string{
	TierGreen:  "#28a745",
	TierYellow: "#ffc107",
	TierOrange: "#fd7e14",
	TierRed:    "#dc3545",
}

// SimilarityTier maps a score in [0,1] to its badge tier.
func SimilarityTier(score float64) Tier {
	switch {
	case score >= 0.8:
		return TierGreen
	case score >= 0.6:
		return TierYellow
	case score >= 0.4:
		return TierOrange
	default:
		return TierRed
	}
}

// Color returns the hex colour of the tier.
func (t Tier) Color() string {
	return tierColors[t]
}

// SimilarityLabel renders the badge text, e.g. "81.2% Match".
func SimilarityLabel(score float64) string {
	return fmt.Sprintf("%.1f%% Match", score*100)
}

// FormatScore renders a number without trailing zeros, like 7 or 8.5.
func FormatScore(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

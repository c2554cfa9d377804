package utils

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULIDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetStringPointer(text string) *string {
	return &text
}

// MaskIdentifier hides all but the last 4 digits of a 12-digit identifier.
// This is the default external representation of the number.
func MaskIdentifier(num string) string {
	if num == "" {
		return ""
	}
	digits := strings.ReplaceAll(num, " ", "")
	if len(digits) < 4 {
		return "XXXX XXXX XXXX"
	}
	return "XXXX XXXX " + digits[len(digits)-4:]
}

// FormatIdentifier renders a 12-digit identifier as three 4-digit groups.
func FormatIdentifier(digits string) string {
	if len(digits) != 12 {
		return digits
	}
	return digits[:4] + " " + digits[4:8] + " " + digits[8:]
}

// Clamp01 bounds similarity and confidence values to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

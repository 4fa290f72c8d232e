package utils

import (
	"fmt"
	"math/rand"
	"regexp"
)

var roomCodePattern = regexp.MustCompile(`^\d{6}$`)

// GenerateRoomCode returns a random 6-digit room code. Codes may collide;
// callers retry against the store until an unused one is found.
func GenerateRoomCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// IsValidRoomCode reports whether code is exactly 6 digits.
func IsValidRoomCode(code string) bool {
	return roomCodePattern.MatchString(code)
}

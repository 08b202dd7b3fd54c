package utils

import "fmt"

// MemberCode builds the human-facing member identifier from the allocated
// sequence number and the registration year, e.g. M1042-2026.
func MemberCode(sequence int64, year int) string {
	return fmt.Sprintf("M%d-%d", sequence, year)
}

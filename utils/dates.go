// utils/dates.go
package utils

import "time"

// Age returns the age in whole years at the given reference time. The year
// difference is decremented when the birthday has not yet occurred this
// year; the birthday itself counts as occurred.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

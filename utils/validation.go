// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// ValidatePhone checks if a phone number is in a valid international format:
// an optional + prefix followed by 2-15 digits.
func ValidatePhone(phone string) bool {
	cleaned := phoneCleaner.Replace(phone)

	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

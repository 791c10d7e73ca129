package service

import "strings"

var phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

// NormalizePhone removes spaces, dashes, parentheses and a leading "+", so
// "+54 9 (11) 5555-0000" and "5491155550000" key the same invitation.
func NormalizePhone(phone string) string {
	p := phoneStripper.Replace(strings.TrimSpace(phone))
	return strings.TrimPrefix(p, "+")
}

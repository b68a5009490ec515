package models

import "strings"

// OnlyDigits strips formatting such as "12.345.678/0001-90".
func OnlyDigits(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for _, char := range raw {
		if char >= '0' && char <= '9' {
			builder.WriteRune(char)
		}
	}
	return builder.String()
}

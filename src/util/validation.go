package util

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidateName(name string) bool {
	return len(name) >= 1 && len(name) <= 30
}

func ValidateTitle(title string) bool {
	return len(title) >= 1 && len(title) <= 30
}

func ValidateDescription(description *string) bool {
	return description == nil || len(*description) <= 255
}

func ValidateNote(note string) bool {
	return len(note) >= 1 && len(note) <= 30
}

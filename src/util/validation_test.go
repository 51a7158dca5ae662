package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last+tag@sub.example.org"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "a@b", "@x.com", "a @x.com"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidateLengths(t *testing.T) {
	assert.True(t, ValidateName("Ada"))
	assert.False(t, ValidateName(""))
	assert.False(t, ValidateName(strings.Repeat("x", 31)))

	assert.True(t, ValidateTitle("Food"))
	assert.False(t, ValidateTitle(strings.Repeat("x", 31)))

	assert.True(t, ValidateNote("lunch"))
	assert.False(t, ValidateNote(""))

	long := strings.Repeat("x", 256)
	ok := strings.Repeat("x", 255)
	assert.True(t, ValidateDescription(nil))
	assert.True(t, ValidateDescription(&ok))
	assert.False(t, ValidateDescription(&long))
}

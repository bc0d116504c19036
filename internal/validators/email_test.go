package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@club.io", NormalizeEmail("  Jane@Club.IO "))
}

func TestIsEmailSyntaxValid(t *testing.T) {
	assert.True(t, IsEmailSyntaxValid("jane@club.io"))
	assert.False(t, IsEmailSyntaxValid("jane"))
	assert.False(t, IsEmailSyntaxValid("Jane <jane@club.io>"))
}

func TestIsEmailDomainValid_RejectsMissingDomain(t *testing.T) {
	assert.False(t, IsEmailDomainValid("jane@"))
	assert.False(t, IsEmailDomainValid("jane"))
}

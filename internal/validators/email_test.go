package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceylonstyle/salon-backend/internal/validators"
)

// Malformed addresses are rejected before any DNS lookup happens, so
// these cases run offline.
func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	assert.False(t, validators.IsEmailDomainValid("no-at-sign"))
	assert.False(t, validators.IsEmailDomainValid("trailing@"))
	assert.False(t, validators.IsEmailDomainValid("@no-local-part.example"))
	assert.False(t, validators.IsEmailDomainValid(""))
}

package timezone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/timezone"
)

func TestIsValid(t *testing.T) {
	assert.True(t, timezone.IsValid("Asia/Colombo"))
	assert.True(t, timezone.IsValid("UTC"))
	assert.False(t, timezone.IsValid(""))
	assert.False(t, timezone.IsValid("Mars/Olympus"))
}

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "Asia/Colombo", timezone.Location("nonsense").String())
	assert.Equal(t, "UTC", timezone.Location("UTC").String())
}

func TestParseDate(t *testing.T) {
	d, err := timezone.ParseDate("2026-09-07")
	require.NoError(t, err)

	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, "Asia/Colombo", d.Location().String())

	_, err = timezone.ParseDate("07/09/2026")
	assert.Error(t, err)
}

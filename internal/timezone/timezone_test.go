package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	// 01:30 UTC on March 2nd is still March 1st in São Paulo (UTC-3).
	instant := time.Date(2025, 3, 2, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), DateOf(instant, "America/Sao_Paulo"))
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), DateOf(instant, "UTC"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("Europe/Lisbon"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Nowhere/Town"))
}

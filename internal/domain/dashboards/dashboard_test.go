//go:build unit
// +build unit

package dashboards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	start, end := DayBounds(time.Date(2030, 5, 2, 3, 30, 0, 0, manila))

	assert.Equal(t, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2030, 5, 1, 23, 59, 59, 999999999, time.UTC), end)
}

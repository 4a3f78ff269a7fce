package reldate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestZoneName(t *testing.T) {
	assert.Equal(t, "UTC", zoneName(time.UTC))
	assert.Equal(t, "IDT", zoneName(time.FixedZone("IDT", 3*60*60)))

	t.Setenv("TZ", "Asia/Jerusalem")
	assert.Equal(t, "Asia/Jerusalem", zoneName(time.Local))

	t.Setenv("TZ", ":/usr/share/zoneinfo/Europe/Berlin")
	assert.Equal(t, "Europe/Berlin", zoneName(time.Local))

	t.Setenv("TZ", "")
	assert.Equal(t, "UTC", zoneName(time.Local))
}

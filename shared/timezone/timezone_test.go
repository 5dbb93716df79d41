package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tourbook/shared/timezone"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { timezone.Init("UTC") })

	timezone.Init("Asia/Jakarta")
	assert.Equal(t, "Asia/Jakarta", timezone.Location().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())

	timezone.Init("Mars/Olympus_Mons")
	assert.Equal(t, time.UTC, timezone.Location())

	timezone.Init("")
	assert.Equal(t, time.UTC, timezone.Location())
}

func TestFormat(t *testing.T) {
	t.Cleanup(func() { timezone.Init("UTC") })
	timezone.Init("Asia/Jakarta")

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01 07:00", timezone.Format(ts, "2006-01-02 15:04"))
	assert.True(t, ts.Equal(timezone.ToAppTime(ts)))
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntradayPoint_Time(t *testing.T) {
	t.Parallel()

	got, err := IntradayPoint{Timestamp: "2024-01-02 15:30:00"}.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC), got)

	got, err = IntradayPoint{Timestamp: "2021-01-01"}.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = IntradayPoint{Timestamp: "yesterday"}.Time()
	assert.Error(t, err)
}

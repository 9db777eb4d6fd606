package timex

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_JSON(t *testing.T) {
	tt := Time(time.Date(2024, 2, 14, 9, 0, 0, 0, time.Local))

	b, err := tt.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-14 09:00:00"`, string(b))

	var back Time
	require.NoError(t, back.UnmarshalJSON(b))
	assert.True(t, back.Std().Equal(tt.Std()))
	assert.Equal(t, "2024-02-14 09:00:00", back.String())

	assert.Error(t, back.UnmarshalJSON([]byte(`"2024-02-14T09:00:00Z"`)))
}

func TestTime_Zero(t *testing.T) {
	zero, err := Time{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(zero))

	var back Time
	require.NoError(t, back.UnmarshalJSON([]byte("null")))
	assert.True(t, back.IsZero())
}

func TestTime_InStruct(t *testing.T) {
	type run struct {
		StartedAt Time `json:"startedAt"`
		NextRun   Time `json:"nextRun"`
	}
	b, err := sonic.Marshal(run{StartedAt: Time(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Equal(t, `{"startedAt":"2024-03-15 09:00:00","nextRun":""}`, string(b))
}

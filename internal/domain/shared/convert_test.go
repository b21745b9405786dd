package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDate(t *testing.T) {
	d := ToDate("2024-01-02")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *d)

	// Malformed input degrades to nil, never an error.
	assert.Nil(t, ToDate("2024-01-abc"))
	assert.Nil(t, ToDate("2024-1"))
	assert.Nil(t, ToDate(""))
	assert.Nil(t, ToDate("20240102"))

	// Calendar overflow is rejected, not normalized to March.
	assert.Nil(t, ToDate("2024-02-31"))
	assert.Nil(t, ToDate("2024-13-01"))
	assert.Nil(t, ToDate("2024-00-10"))
}

func TestToTicker(t *testing.T) {
	code, err := ToTicker("7203")
	require.NoError(t, err)
	assert.Equal(t, "07203", code)

	code, err = ToTicker("A")
	require.NoError(t, err)
	assert.Equal(t, "0000A", code)

	code, err = ToTicker("AAPL5")
	require.NoError(t, err)
	assert.Equal(t, "AAPL5", code)

	_, err = ToTicker("720312")
	assert.Error(t, err)
	_, err = ToTicker(7203)
	assert.Error(t, err)
}

func TestToInt64(t *testing.T) {
	for _, v := range []any{int(7), int32(7), int64(7), float64(7), "7"} {
		n, err := ToInt64(v)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	}

	_, err := ToInt64(7.5)
	assert.Error(t, err)
	_, err = ToInt64("seven")
	assert.Error(t, err)
	_, err = ToInt64(true)
	assert.Error(t, err)
}

func TestDateColumn(t *testing.T) {
	v, err := DateColumn("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), v)

	// Absent and malformed values both land as SQL NULL.
	v, err = DateColumn(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = DateColumn("garbage")
	require.NoError(t, err)
	assert.Nil(t, v)

	// A non-string is a contract violation, not a NULL.
	_, err = DateColumn(20240315)
	assert.Error(t, err)
}

func TestBoolColumn(t *testing.T) {
	v, err := BoolColumn("true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = BoolColumn(false)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = BoolColumn(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = BoolColumn(1.0)
	assert.Error(t, err)
}

func TestWithDefault(t *testing.T) {
	fn := WithDefault(int64(0), IntColumn)

	v, err := fn(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	v, err = fn(float64(250))
	require.NoError(t, err)
	assert.Equal(t, int64(250), v)
}

func TestStamps(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	created := map[string]any{}
	StampCreate(created, now)
	assert.Equal(t, now, created[ColCreated])
	assert.Equal(t, now, created[ColLastModified])

	touched := map[string]any{}
	StampTouch(touched, now)
	assert.Equal(t, now, touched[ColLastModified])
	_, present := touched[ColCreated]
	assert.False(t, present, "touch must not claim creation")
}

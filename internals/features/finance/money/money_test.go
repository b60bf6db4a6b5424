package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	a, err := FromString("1500.50")
	require.NoError(t, err)
	assert.Equal(t, "1500.5", a.String())

	a, err = FromString("1500")
	require.NoError(t, err)
	assert.True(t, a.Equal(FromInt(1500)))

	_, err = FromString("12.345")
	assert.Error(t, err, "more than two decimal places must be rejected")

	_, err = FromString("abc")
	assert.Error(t, err)
}

func TestArithmetic(t *testing.T) {
	a := FromInt(1000)
	b, err := FromString("250.25")
	require.NoError(t, err)

	sum := a.Add(b)
	want, _ := FromString("1250.25")
	assert.True(t, sum.Equal(want))

	diff := a.Sub(b)
	want, _ = FromString("749.75")
	assert.True(t, diff.Equal(want))

	assert.True(t, b.Sub(a).IsNegative())
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(FromInt(1000)))
}

func TestZeroValue(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.True(t, a.Equal(Zero))
	assert.False(t, a.IsPositive())
	assert.False(t, a.IsNegative())
}

func TestUnmarshalJSON(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`1500.50`), &a))
	want, _ := FromString("1500.50")
	assert.True(t, a.Equal(want))

	require.NoError(t, json.Unmarshal([]byte(`"249.99"`), &a))
	want, _ = FromString("249.99")
	assert.True(t, a.Equal(want))

	// null is a no-op, like the stdlib convention
	require.NoError(t, json.Unmarshal([]byte(`null`), &a))
	assert.True(t, a.Equal(want))

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}

// Sub-cent inputs must be rejected at the boundary: 0.004 would pass a
// positivity check and then round away to a zero balance movement while
// still minting payment and ledger rows.
func TestUnmarshalJSONRejectsSubCent(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`0.004`), &a))
	assert.Error(t, json.Unmarshal([]byte(`"0.004"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`12.345`), &a))
	assert.Error(t, json.Unmarshal([]byte(`5e-3`), &a))
}

func TestSum(t *testing.T) {
	total := Sum(FromInt(100), FromInt(200), FromInt(300))
	assert.True(t, total.Equal(FromInt(600)))
	assert.True(t, Sum().IsZero())
}

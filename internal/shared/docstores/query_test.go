package docstores

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_BuilderReturnsCopies(t *testing.T) {
	t.Parallel()

	base := NewQuery("analytics", "User").Filter("day", OpGreaterOrEqual, int64(1))
	withLimit := base.Limit(10).KeysOnly()

	assert.Equal(t, 0, base.PageSize())
	assert.False(t, base.IsKeysOnly())
	assert.Equal(t, 10, withLimit.PageSize())
	assert.True(t, withLimit.IsKeysOnly())

	extended := base.Filter("day", OpLessOrEqual, int64(2))
	assert.Len(t, base.Filters(), 1)
	assert.Len(t, extended.Filters(), 2)
}

func TestQuery_InequalityField(t *testing.T) {
	t.Parallel()

	field, ok := NewQuery("analytics", "Session").
		Filter("appId", OpEqual, "a").
		Filter("lastActive", OpGreaterOrEqual, int64(1)).
		inequalityField()
	assert.True(t, ok)
	assert.Equal(t, "lastActive", field)

	_, ok = NewQuery("analytics", "Session").Filter("appId", OpEqual, "a").inequalityField()
	assert.False(t, ok)

	_, ok = NewQuery("ArcInfo", "Messages").Filter("target", OpContains, "linux").inequalityField()
	assert.False(t, ok, "contains is not a range filter")
}

func TestCursor_RoundTripNormalizesNumbers(t *testing.T) {
	t.Parallel()

	cursor, err := encodeCursor(cursorState{Values: []any{int64(1710028800000), "app", 1.5}, DocID: "doc-1"})
	require.NoError(t, err)

	state, err := decodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1710028800000), "app", 1.5}, state.Values)
	assert.Equal(t, "doc-1", state.DocID)
}

func TestProperties_Int64(t *testing.T) {
	t.Parallel()

	props := Properties{
		"int":     7,
		"int64":   int64(8),
		"float":   float64(9),
		"frac":    9.5,
		"number":  json.Number("10"),
		"string":  "11",
		"missing": nil,
	}

	tests := []struct {
		field  string
		want   int64
		wantOk bool
	}{
		{field: "int", want: 7, wantOk: true},
		{field: "int64", want: 8, wantOk: true},
		{field: "float", want: 9, wantOk: true},
		{field: "frac", wantOk: false},
		{field: "number", want: 10, wantOk: true},
		{field: "string", wantOk: false},
		{field: "missing", wantOk: false},
		{field: "absent", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := props.Int64(tt.field)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProperties_Strings(t *testing.T) {
	t.Parallel()

	props := Properties{
		"typed":   []string{"a", "b"},
		"decoded": []any{"c", "d"},
		"mixed":   []any{"e", 1},
		"scalar":  "f",
	}

	got, ok := props.Strings("typed")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	got, ok = props.Strings("decoded")
	assert.True(t, ok)
	assert.Equal(t, []string{"c", "d"}, got)

	_, ok = props.Strings("mixed")
	assert.False(t, ok)
	_, ok = props.Strings("scalar")
	assert.False(t, ok)
	_, ok = props.Strings("absent")
	assert.False(t, ok)
}

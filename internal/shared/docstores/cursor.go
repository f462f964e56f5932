package docstores

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// cursorState is the decoded form of a Cursor. SQL backends resume by row id
// or offset, Firestore by the last document's order values and id.
type cursorState struct {
	AfterID int64  `json:"a,omitempty"`
	Offset  int    `json:"o,omitempty"`
	Values  []any  `json:"v,omitempty"`
	DocID   string `json:"d,omitempty"`
}

func encodeCursor(state cursorState) (Cursor, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return Cursor(base64.RawURLEncoding.EncodeToString(data)), nil
}

func decodeCursor(cursor Cursor) (cursorState, error) {
	var state cursorState
	if cursor == "" {
		return state, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(string(cursor))
	if err != nil {
		return state, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&state); err != nil {
		return state, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	for i, v := range state.Values {
		state.Values[i] = normalizeNumber(v)
	}
	return state, nil
}

// normalizeNumber turns json.Number into int64 or float64 so the value can be
// handed back to a driver.
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// numericInt decodes a JSON integer given either as a number or as a string
// holding one, e.g. 1965 or "1965". Form inputs posted by browser clients
// arrive as strings.
type numericInt int

func (n *numericInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*n = numericInt(v)
	return nil
}

// intPointer converts an optional numericInt, keeping nil for absent fields.
func (n *numericInt) intPointer() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

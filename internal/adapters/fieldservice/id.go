package fieldservice

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	perr "laborreport/internal/platform/errors"
)

// ID is an opaque record identifier. The API sends it as a string or a number
type ID string

// UnmarshalJSON accepts "123", 123 and 123.0
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return perr.JSONErrf("record id is null")
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "record id")
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "record id")
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) {
		*id = ID(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Strings converts ids for filter building
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

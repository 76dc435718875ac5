package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// VoteUpdate is the request body for PATCH on articles and comments.
// IncVotes is kept raw so that absent or non-numeric values can fall back to zero.
type VoteUpdate struct {
	IncVotes json.RawMessage `json:"inc_votes"`
}

// Delta returns inc_votes as an integer. Missing, null, fractional and
// non-numeric values all yield 0. Numeric strings such as "5" are accepted.
func (v VoteUpdate) Delta() int {
	raw := bytes.TrimSpace(v.IncVotes)
	if len(raw) == 0 {
		return 0
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return 0
	}

	var s string
	switch n := value.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
	default:
		return 0
	}

	delta, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return delta
}

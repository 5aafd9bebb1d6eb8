// Package identity canonicalizes raw caller-supplied identifiers into
// comparable party IDs. The ledger core never compares raw strings; every
// identifier crosses through Parse exactly once at the boundary.
package identity

import (
	"fmt"
	"strings"
)

// PartyID is a canonical party identifier. Two raw strings that canonicalize
// to the same PartyID are the same party.
type PartyID string

const (
	minLength = 3
	maxLength = 64
)

// InvalidPartyError reports a raw identifier that failed validation.
type InvalidPartyError struct {
	Raw    string
	Reason string
}

func (e *InvalidPartyError) Error() string {
	return fmt.Sprintf("invalid party id %q: %s", e.Raw, e.Reason)
}

// Parse canonicalizes raw into a PartyID: surrounding whitespace is stripped
// and letters are lowered, so differently-cased spellings of one identifier
// resolve to the same party. The canonical form must be 3-64 characters of
// [a-z0-9._-] and start with a letter or digit.
func Parse(raw string) (PartyID, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) < minLength {
		return "", &InvalidPartyError{Raw: raw, Reason: "too short"}
	}
	if len(s) > maxLength {
		return "", &InvalidPartyError{Raw: raw, Reason: "too long"}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
			if i == 0 {
				return "", &InvalidPartyError{Raw: raw, Reason: "must start with a letter or digit"}
			}
		default:
			return "", &InvalidPartyError{Raw: raw, Reason: "contains invalid characters"}
		}
	}
	return PartyID(s), nil
}

// ParseAll canonicalizes every element of raws, preserving order. It fails on
// the first invalid identifier and does not deduplicate.
func ParseAll(raws []string) ([]PartyID, error) {
	out := make([]PartyID, 0, len(raws))
	for _, r := range raws {
		p, err := Parse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

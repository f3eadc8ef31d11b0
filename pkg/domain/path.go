package domain

import (
	"encoding/json"
	"strings"
)

// Path addresses a single preference inside the settings tree.
type Path []string

// ParsePath splits a dotted path ("collapsed.auto.all") into its keys.
// Empty segments are dropped.
func ParsePath(s string) Path {
	var p Path
	for _, key := range strings.Split(s, ".") {
		if key = strings.TrimSpace(key); key != "" {
			p = append(p, key)
		}
	}
	return p
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether both paths address the same preference.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p lies under prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// MarshalJSON encodes the path as an array of keys, matching the web client.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(p))
}

// UnmarshalJSON accepts either an array of keys or a dotted string.
func (p *Path) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err == nil {
		*p = keys
		return nil
	}
	var dotted string
	if err := json.Unmarshal(data, &dotted); err != nil {
		return err
	}
	*p = ParsePath(dotted)
	return nil
}

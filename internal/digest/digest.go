// Package digest holds the per-entry MD5 digests computed for one archive.
package digest

import (
	"crypto/md5"
	"encoding/hex"
)

// Algorithm names the hash used for entry digests.
const Algorithm = "md5"

// Sum returns the lowercase hex MD5 of data.
func Sum(data []byte) string {
	h := md5.Sum(data)
	return hex.EncodeToString(h[:])
}

// Mapping maps entry names to content digests.
// Names are kept in first-seen order; setting an existing name replaces its
// digest but keeps its position.
type Mapping struct {
	names []string
	sums  map[string]string
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{sums: make(map[string]string)}
}

// Set records the digest for name, overwriting any earlier value.
func (m *Mapping) Set(name, sum string) {
	if _, ok := m.sums[name]; !ok {
		m.names = append(m.names, name)
	}
	m.sums[name] = sum
}

// Lookup returns the digest for name.
func (m *Mapping) Lookup(name string) (string, bool) {
	sum, ok := m.sums[name]
	return sum, ok
}

// Len returns the number of distinct names.
func (m *Mapping) Len() int {
	return len(m.names)
}

// Names returns a copy of the entry names in first-seen order.
func (m *Mapping) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

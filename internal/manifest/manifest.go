package manifest

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/mcdonaldj/zipcmp/internal/digest"
)

type Entry struct {
	Name string `json:"name"`
	MD5  string `json:"md5"`
}

type Manifest struct {
	Archive   string  `json:"archive"`
	Algorithm string  `json:"algorithm"`
	Entries   []Entry `json:"entries"`
}

// New builds a manifest for archive from its digests, in archive order.
func New(archive string, sums *digest.Mapping) *Manifest {
	m := &Manifest{
		Archive:   archive,
		Algorithm: digest.Algorithm,
		Entries:   make([]Entry, 0, sums.Len()),
	}
	for _, name := range sums.Names() {
		sum, _ := sums.Lookup(name)
		m.Entries = append(m.Entries, Entry{Name: name, MD5: sum})
	}
	return m
}

// Write encodes the manifest as indented JSON.
func (m *Manifest) Write(w io.Writer) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

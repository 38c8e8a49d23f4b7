// Package mocks provides mock implementations for testing.
package mocks

import (
	"os"

	"github.com/mcdonaldj/zipcmp/internal/digest"
	"github.com/mcdonaldj/zipcmp/internal/ports"
)

// MockArchiver implements ports.Archiver for testing.
type MockArchiver struct {
	// Contents maps zip paths to the digests Digests returns for them
	Contents map[string]*digest.Mapping
	// Errors maps zip paths to errors (for simulating failures)
	Errors map[string]error
	// DigestCalls records the zip paths passed to Digests, in call order
	DigestCalls []string
}

// NewMockArchiver creates a new mock archiver.
func NewMockArchiver() *MockArchiver {
	return &MockArchiver{
		Contents: make(map[string]*digest.Mapping),
		Errors:   make(map[string]error),
	}
}

// AddArchive registers an archive whose entries are given as name, content pairs.
// Entries are recorded in argument order; a repeated name overwrites like a real archive.
func (m *MockArchiver) AddArchive(zipPath string, pairs ...string) {
	sums := digest.NewMapping()
	for i := 0; i+1 < len(pairs); i += 2 {
		sums.Set(pairs[i], digest.Sum([]byte(pairs[i+1])))
	}
	m.Contents[zipPath] = sums
}

// Digests returns the registered mapping for zipPath.
// Unknown paths fail like a missing file.
func (m *MockArchiver) Digests(zipPath string) (*digest.Mapping, error) {
	m.DigestCalls = append(m.DigestCalls, zipPath)
	if err, ok := m.Errors[zipPath]; ok {
		return nil, err
	}
	if sums, ok := m.Contents[zipPath]; ok {
		return sums, nil
	}
	return nil, &ports.ArchiveError{Path: zipPath, Op: ports.OpOpen, Err: os.ErrNotExist}
}

// Compile-time check that MockArchiver implements ports.Archiver.
var _ ports.Archiver = (*MockArchiver)(nil)

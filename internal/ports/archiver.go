// Package ports defines interfaces (contracts) for external dependencies.
// These enable dependency injection and testability via mock implementations.
package ports

import (
	"errors"
	"fmt"

	"github.com/mcdonaldj/zipcmp/internal/digest"
)

// Archiver abstracts zip archive reading for testability.
// Production code uses ZipArchiver adapter; tests use MockArchiver.
type Archiver interface {
	// Digests opens the archive at zipPath and returns the MD5 digest of every
	// non-directory entry, keyed by entry name.
	// Failures are returned as *ArchiveError.
	Digests(zipPath string) (*digest.Mapping, error)
}

// ArchiveOp identifies the stage at which reading an archive failed.
type ArchiveOp string

const (
	// OpOpen covers a missing file or one that is not a valid zip container.
	OpOpen ArchiveOp = "open"
	// OpRead covers failures reading an individual entry.
	OpRead ArchiveOp = "read"
)

var (
	// ErrInvalidArchive matches ArchiveErrors raised while opening an archive.
	ErrInvalidArchive = errors.New("invalid archive")
	// ErrEntryRead matches ArchiveErrors raised while reading an entry.
	ErrEntryRead = errors.New("entry read failed")
)

// ArchiveError reports a failure to produce digests for an archive.
type ArchiveError struct {
	Path  string
	Entry string // empty for OpOpen
	Op    ArchiveOp
	Err   error
}

func (e *ArchiveError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("could not read %s in %s: %v", e.Entry, e.Path, e.Err)
	}
	return fmt.Sprintf("could not read ZIP file %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the failed stage.
func (e *ArchiveError) Is(target error) bool {
	switch target {
	case ErrInvalidArchive:
		return e.Op == OpOpen
	case ErrEntryRead:
		return e.Op == OpRead
	}
	return false
}

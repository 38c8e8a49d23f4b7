// Package ziparchiver provides an archiver adapter using the archive/zip package.
package ziparchiver

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/mcdonaldj/zipcmp/internal/digest"
	"github.com/mcdonaldj/zipcmp/internal/ports"
)

// MaxDecompressSize is the default maximum allowed uncompressed entry size (10GB).
// This prevents decompression bomb attacks (G110).
const MaxDecompressSize = 10 * 1024 * 1024 * 1024 // 10GB

// ZipArchiver implements ports.Archiver using archive/zip.
type ZipArchiver struct {
	maxEntrySize uint64
}

// New creates a new ZipArchiver adapter.
// A maxEntrySize of zero or less selects MaxDecompressSize.
func New(maxEntrySize int64) *ZipArchiver {
	limit := uint64(MaxDecompressSize)
	if maxEntrySize > 0 {
		limit = uint64(maxEntrySize)
	}
	return &ZipArchiver{maxEntrySize: limit}
}

// Digests returns the MD5 digest of every non-directory entry in the archive.
// A later entry with a duplicate name replaces the earlier one.
func (a *ZipArchiver) Digests(zipPath string) (*digest.Mapping, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &ports.ArchiveError{Path: zipPath, Op: ports.OpOpen, Err: err}
	}
	defer func() { _ = r.Close() }()

	sums := digest.NewMapping()
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		content, err := a.readEntry(f)
		if err != nil {
			return nil, &ports.ArchiveError{Path: zipPath, Entry: f.Name, Op: ports.OpRead, Err: err}
		}
		sums.Set(f.Name, digest.Sum(content))
	}

	return sums, nil
}

// readEntry reads the full decompressed content of a single entry.
func (a *ZipArchiver) readEntry(f *zip.File) ([]byte, error) {
	// SECURITY: Limit decompression size to prevent zip bombs (G110)
	declaredSize := f.UncompressedSize64
	if declaredSize > a.maxEntrySize {
		return nil, fmt.Errorf("entry too large: %d bytes exceeds limit of %d bytes", declaredSize, a.maxEntrySize)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	// Add 1 byte to detect if actual size exceeds declared size
	content, err := io.ReadAll(io.LimitReader(rc, int64(declaredSize)+1))
	if err != nil {
		return nil, err
	}

	if uint64(len(content)) > declaredSize {
		return nil, fmt.Errorf("decompressed size exceeds declared size")
	}

	return content, nil
}

// Compile-time check that ZipArchiver implements ports.Archiver.
var _ ports.Archiver = (*ZipArchiver)(nil)

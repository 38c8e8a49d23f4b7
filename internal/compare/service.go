package compare

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mcdonaldj/zipcmp/internal/adapters/ziparchiver"
	"github.com/mcdonaldj/zipcmp/internal/config"
	"github.com/mcdonaldj/zipcmp/internal/digest"
	"github.com/mcdonaldj/zipcmp/internal/ports"
)

// ErrMissingInput is returned when an archive path was not provided.
var ErrMissingInput = errors.New("please select both ZIP files")

// Service runs comparisons with injected dependencies.
type Service struct {
	archiver ports.Archiver
	logger   *slog.Logger
}

// NewService creates a comparison service with the given dependencies.
// A nil logger discards all output.
func NewService(archiver ports.Archiver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		archiver: archiver,
		logger:   logger,
	}
}

// NewDefaultService creates a service with real production dependencies.
func NewDefaultService(cfg *config.Config, logger *slog.Logger) *Service {
	return NewService(ziparchiver.New(cfg.MaxEntrySize), logger)
}

// Run compares the archives at pathA and pathB.
// Both archives are read in full before comparing; any read failure aborts
// the comparison and is returned as a *ports.ArchiveError.
func (s *Service) Run(pathA, pathB string) (*Report, error) {
	if strings.TrimSpace(pathA) == "" {
		return nil, fmt.Errorf("first archive: %w", ErrMissingInput)
	}
	if strings.TrimSpace(pathB) == "" {
		return nil, fmt.Errorf("second archive: %w", ErrMissingInput)
	}

	a, err := s.List(pathA)
	if err != nil {
		return nil, err
	}
	b, err := s.List(pathB)
	if err != nil {
		return nil, err
	}

	report := Compare(a, b)
	report.ArchiveA = pathA
	report.ArchiveB = pathB

	s.logger.Debug("compared archives",
		"result", report.Kind.String(),
		"count_a", report.CountA,
		"count_b", report.CountB,
		"findings", len(report.Findings))

	return report, nil
}

// List returns the entry digests of a single archive.
func (s *Service) List(path string) (*digest.Mapping, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrMissingInput
	}

	s.logger.Debug("reading archive", "path", path)
	sums, err := s.archiver.Digests(config.ExpandPath(path))
	if err != nil {
		s.logger.Debug("reading archive failed", "path", path, "error", err)
		return nil, err
	}
	s.logger.Debug("read archive", "path", path, "entries", sums.Len())

	return sums, nil
}

// ============================================================================
// Package-level functions using default service
// ============================================================================

// Run compares two archives using the default production dependencies.
func Run(cfg *config.Config, pathA, pathB string) (*Report, error) {
	return NewDefaultService(cfg, nil).Run(pathA, pathB)
}

// List returns the entry digests of an archive using the default production dependencies.
func List(cfg *config.Config, path string) (*digest.Mapping, error) {
	return NewDefaultService(cfg, nil).List(path)
}

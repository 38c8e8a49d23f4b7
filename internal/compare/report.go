// Package compare diffs the entry digests of two zip archives.
package compare

import (
	"fmt"

	"github.com/mcdonaldj/zipcmp/internal/digest"
)

// Kind is the overall outcome of a comparison.
type Kind int

const (
	Identical Kind = iota
	CountMismatch
	Different
)

func (k Kind) String() string {
	switch k {
	case Identical:
		return "identical"
	case CountMismatch:
		return "count_mismatch"
	case Different:
		return "different"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FindingKind classifies a single difference.
type FindingKind int

const (
	// MissingInOther means the entry exists in the first archive only.
	MissingInOther FindingKind = iota
	// ContentMismatch means both archives hold the entry with different digests.
	ContentMismatch
)

func (k FindingKind) String() string {
	switch k {
	case MissingInOther:
		return "missing_in_other"
	case ContentMismatch:
		return "content_mismatch"
	}
	return fmt.Sprintf("finding(%d)", int(k))
}

// MarshalText encodes the finding kind by name.
func (k FindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Finding is one difference between the archives.
type Finding struct {
	Kind  FindingKind `json:"kind"`
	Entry string      `json:"entry"`
}

// Message describes the finding for display.
func (f Finding) Message() string {
	if f.Kind == MissingInOther {
		return fmt.Sprintf("File %s not found in second ZIP", f.Entry)
	}
	return fmt.Sprintf("File %s has different content", f.Entry)
}

// Report is the result of comparing two archives.
// CountA and CountB are always set; Findings is non-empty only for Different.
type Report struct {
	ArchiveA string    `json:"archive_a,omitempty"`
	ArchiveB string    `json:"archive_b,omitempty"`
	Kind     Kind      `json:"result"`
	CountA   int       `json:"count_a"`
	CountB   int       `json:"count_b"`
	Findings []Finding `json:"findings,omitempty"`
}

// Identical reports whether the archives have the same contents.
func (r *Report) Identical() bool {
	return r.Kind == Identical
}

// Compare diffs two digest mappings.
//
// Differing entry counts short-circuit to CountMismatch. Otherwise every entry
// of a, in order, is looked up in b. Entries only present in b are not
// reported on their own.
func Compare(a, b *digest.Mapping) *Report {
	report := &Report{
		CountA: a.Len(),
		CountB: b.Len(),
	}

	if a.Len() != b.Len() {
		report.Kind = CountMismatch
		return report
	}

	for _, name := range a.Names() {
		sumA, _ := a.Lookup(name)
		sumB, ok := b.Lookup(name)
		switch {
		case !ok:
			report.Findings = append(report.Findings, Finding{Kind: MissingInOther, Entry: name})
		case sumA != sumB:
			report.Findings = append(report.Findings, Finding{Kind: ContentMismatch, Entry: name})
		}
	}

	if len(report.Findings) == 0 {
		report.Kind = Identical
	} else {
		report.Kind = Different
	}
	return report
}

package syllabus

import "errors"

var (
	// ErrDocumentUnreadable means the input could not be turned into text.
	ErrDocumentUnreadable = errors.New("document unreadable")
	// ErrNoStructureFound means no strategy recognised any experiment.
	ErrNoStructureFound = errors.New("no syllabus structure found")
	// ErrEnrichmentUnavailable means the generative fallback is not
	// configured or failed.
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")
)

// internal/puzzle/artifact.go
//
// Versioned JSON artifact written by the generator and consumed by the
// publisher and the share tool.

package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/noam-r/magic-four-squared/internal/words"
)

// DocumentVersion is the current artifact format version.
const DocumentVersion = 1

// Document is a batch of puzzles from one generator run.
type Document struct {
	Version     int            `json:"version"`
	Language    words.Language `json:"language"`
	Size        int            `json:"size"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Puzzles     []Puzzle       `json:"puzzles"`
}

// NewDocument starts an empty artifact for one language and size.
func NewDocument(lang words.Language, size int) *Document {
	return &Document{
		Version:     DocumentVersion,
		Language:    lang,
		Size:        size,
		GeneratedAt: time.Now().UTC(),
	}
}

// Add appends a puzzle to the document.
func (d *Document) Add(p Puzzle) {
	d.Puzzles = append(d.Puzzles, p)
}

// WriteArtifact writes the document as indented JSON.
func WriteArtifact(path string, d *Document) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("puzzle: marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("puzzle: write artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads and fully validates an artifact. Every puzzle in it
// re-proves its square, so downstream code can trust the contents.
func ReadArtifact(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("puzzle: read artifact: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("puzzle: parse artifact: %w", err)
	}
	if d.Version != DocumentVersion {
		return nil, fmt.Errorf("puzzle: artifact version %d, want %d", d.Version, DocumentVersion)
	}
	for i := range d.Puzzles {
		p := &d.Puzzles[i]
		if p.Language != d.Language || p.Size != d.Size {
			return nil, fmt.Errorf("puzzle: entry %d (%s) does not match document language/size", i, p.ID)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

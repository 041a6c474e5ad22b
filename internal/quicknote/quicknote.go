// Package quicknote implements the quick-note capture workflow: locating
// or creating the marker-tagged heading in a target document and
// appending note entries under it.
package quicknote

import (
	"context"
	"fmt"
	"time"

	"sytask/internal/service"
)

// Marker attributes identifying quick-note blocks.
const (
	// HeadingAttr tags the heading quick notes are collected under.
	HeadingAttr = "custom-daily-quick-note"

	// NoteAttr tags each appended note entry for later retrieval.
	NoteAttr = "custom-quick-note"
)

// DailyFileID is the sentinel target id that resolves to today's daily
// document at append time.
const DailyFileID = "daily"

// recentLimit caps the unpinned documents in the file card list.
const recentLimit = 10

// Config is the user's quick-note configuration.
type Config struct {
	NotebookID     string   `json:"notebookId"`
	EnterToSend    bool     `json:"enableEnterToSend"`
	HeadingName    string   `json:"headingName"`
	SelectedFileID string   `json:"selectedFileId,omitempty"`
	PinnedFileIDs  []string `json:"pinnedFileIds,omitempty"`
}

// DefaultConfig returns the quick-note defaults: notes go under a
// "Quick Notes" heading in today's daily document.
func DefaultConfig() Config {
	return Config{
		HeadingName:    "Quick Notes",
		SelectedFileID: DailyFileID,
	}
}

// FileCard is one entry of the target-file picker.
type FileCard struct {
	ID      string
	Name    string
	Path    string
	Pinned  bool
	IsDaily bool
	Updated time.Time
}

// Service runs the quick-note workflow against a host backend. Logf, when
// set, receives diagnostics for silently degraded read failures.
type Service struct {
	Host service.Service
	Logf func(format string, args ...any)
}

func (s *Service) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// FindHeading returns the quick-note heading id in the document, or ""
// when there is none. Query failures are reported as "not found" rather
// than propagated; the caller will create a fresh heading, which favors
// availability over error visibility.
func (s *Service) FindHeading(ctx context.Context, docID string) string {
	id, err := s.Host.FindHeadingWithAttr(ctx, docID, HeadingAttr)
	if err != nil {
		s.logf("quick-note heading lookup failed for %s: %v", docID, err)
		return ""
	}
	return id
}

// CreateHeading prepends a level-2 heading to the document and tags it
// with the heading marker. The two host calls are sequential and not
// atomic: a failure between them leaves an untagged heading behind.
func (s *Service) CreateHeading(ctx context.Context, docID, headingName string) (string, error) {
	headingID, err := s.Host.PrependBlock(ctx, docID, "## "+headingName)
	if err != nil {
		return "", fmt.Errorf("create quick-note heading: %w", err)
	}
	if err := s.Host.SetBlockAttrs(ctx, headingID, map[string]string{HeadingAttr: "true"}); err != nil {
		return "", fmt.Errorf("tag quick-note heading: %w", err)
	}
	return headingID, nil
}

// Add appends a note entry under the heading and tags it with the note
// marker. Same two-step, non-atomic pattern as CreateHeading.
func (s *Service) Add(ctx context.Context, headingID, content string) (string, error) {
	noteID, err := s.Host.AppendBlock(ctx, headingID, "- "+content)
	if err != nil {
		return "", fmt.Errorf("append quick note: %w", err)
	}
	if err := s.Host.SetBlockAttrs(ctx, noteID, map[string]string{NoteAttr: "true"}); err != nil {
		return "", fmt.Errorf("tag quick note: %w", err)
	}
	return noteID, nil
}

// AddToFile appends a note to the given target file, resolving the
// "daily" sentinel to today's daily document and creating the quick-note
// heading if it does not exist yet.
//
// Concurrent appends to the same document can race the find-or-create
// step and each create a heading; the host API offers no way to close
// that window, so duplicate headings are a known limitation.
func (s *Service) AddToFile(ctx context.Context, fileID, content string, cfg Config) (string, error) {
	docID := fileID
	if fileID == DailyFileID {
		id, err := s.Host.DailyNote(ctx, cfg.NotebookID)
		if err != nil {
			return "", fmt.Errorf("resolve daily note: %w", err)
		}
		docID = id
	}

	headingID := s.FindHeading(ctx, docID)
	if headingID == "" {
		id, err := s.CreateHeading(ctx, docID, cfg.HeadingName)
		if err != nil {
			return "", err
		}
		headingID = id
	}

	return s.Add(ctx, headingID, content)
}

// BuildFileCards assembles the target-file picker list: the synthetic
// daily card first, then the configured pinned documents, then up to ten
// recently updated documents excluding the pinned ones. Lookup failures
// degrade to a shorter list instead of an error.
func (s *Service) BuildFileCards(ctx context.Context, cfg Config) []FileCard {
	cards := []FileCard{{
		ID:      DailyFileID,
		Name:    "Daily Note",
		Pinned:  true,
		IsDaily: true,
	}}

	for _, id := range cfg.PinnedFileIDs {
		doc, err := s.Host.GetDocument(ctx, id)
		if err != nil {
			s.logf("pinned document %s lookup failed: %v", id, err)
			continue
		}
		cards = append(cards, FileCard{
			ID:      doc.ID,
			Name:    doc.Name,
			Path:    doc.HPath,
			Pinned:  true,
			Updated: doc.Updated,
		})
	}

	recent, err := s.Host.RecentDocuments(ctx, recentLimit, cfg.PinnedFileIDs)
	if err != nil {
		s.logf("recent documents lookup failed: %v", err)
		return cards
	}
	for _, doc := range recent {
		cards = append(cards, FileCard{
			ID:      doc.ID,
			Name:    doc.Name,
			Path:    doc.HPath,
			Updated: doc.Updated,
		})
	}
	return cards
}

// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"sytask/internal/service"
	"sytask/internal/task"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// createdBlock is a block inserted through the fake host.
type createdBlock struct {
	ID       string
	ParentID string
	Markdown string
}

// FakeService is an in-memory implementation of service.Service for
// testing. It records every mutating call in Calls so tests can assert
// the exact request sequence.
type FakeService struct {
	mu        sync.Mutex
	blocks    []task.TaskBlock
	notebooks []service.Notebook
	docs      map[string]service.Document
	docOrder  []string
	created   []createdBlock
	attrs     map[string]map[string]string
	nextID    int

	// DailyNoteID is returned by DailyNote.
	DailyNoteID string

	// Calls logs mutating and resolution calls in order.
	Calls []string

	// Error injection for testing.
	ListTaskBlocksErr error
	ListNotebooksErr  error
	RecentDocsErr     error
	GetDocumentErr    error
	DailyNoteErr      error
	FindHeadingErr    error
	PrependErr        error
	AppendErr         error
	SetAttrsErr       error
}

// NewFakeService creates an empty fake host.
func NewFakeService() *FakeService {
	return &FakeService{
		docs:        make(map[string]service.Document),
		attrs:       make(map[string]map[string]string),
		DailyNoteID: "daily-doc",
	}
}

// AddTaskBlock registers a raw task row.
func (f *FakeService) AddTaskBlock(b task.TaskBlock) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks = append(f.blocks, b)
}

// AddNotebook registers a notebook.
func (f *FakeService) AddNotebook(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notebooks = append(f.notebooks, service.Notebook{ID: id, Name: name})
}

// AddDocument registers a document; insertion order is recency order.
func (f *FakeService) AddDocument(id, name, hpath string, updated time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[id] = service.Document{ID: id, Name: name, HPath: hpath, Updated: updated}
	f.docOrder = append(f.docOrder, id)
}

// AddHeading registers an existing heading block in a document carrying
// the given marker attribute.
func (f *FakeService) AddHeading(docID, headingID, attrName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, createdBlock{ID: headingID, ParentID: docID, Markdown: "## heading"})
	f.setAttr(headingID, attrName, "true")
}

// BlockAttrs returns the attributes written on a block.
func (f *FakeService) BlockAttrs(id string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.attrs[id]))
	for k, v := range f.attrs[id] {
		out[k] = v
	}
	return out
}

// BlockMarkdown returns the markdown a created block was inserted with.
func (f *FakeService) BlockMarkdown(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.created {
		if b.ID == id {
			return b.Markdown
		}
	}
	return ""
}

func (f *FakeService) setAttr(id, name, value string) {
	if f.attrs[id] == nil {
		f.attrs[id] = make(map[string]string)
	}
	f.attrs[id][name] = value
}

func (f *FakeService) log(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

// ListTaskBlocks implements service.Service. The notebook dimension of
// the filter is honored the way the real SQL query would; rows are
// returned in insertion order.
func (f *FakeService) ListTaskBlocks(ctx context.Context, filter task.Filter) ([]task.TaskBlock, error) {
	if f.ListTaskBlocksErr != nil {
		return nil, f.ListTaskBlocksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make(map[string]string, len(f.notebooks))
	for _, nb := range f.notebooks {
		names[nb.ID] = nb.Name
	}

	var rows []task.TaskBlock
	for _, b := range f.blocks {
		if nf := filter.Notebooks; nf != nil && nf.Enabled && len(nf.NotebookIDs) > 0 {
			listed := false
			for _, id := range nf.NotebookIDs {
				if id == b.Box {
					listed = true
				}
			}
			if listed != (nf.Mode == task.NotebookInclude) {
				continue
			}
		}
		if b.BoxName == "" {
			b.BoxName = names[b.Box]
		}
		rows = append(rows, b)
	}
	return rows, nil
}

// ListNotebooks implements service.Service.
func (f *FakeService) ListNotebooks(ctx context.Context) ([]service.Notebook, error) {
	if f.ListNotebooksErr != nil {
		return nil, f.ListNotebooksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Notebook, len(f.notebooks))
	copy(out, f.notebooks)
	return out, nil
}

// RecentDocuments implements service.Service.
func (f *FakeService) RecentDocuments(ctx context.Context, limit int, excludeIDs []string) ([]service.Document, error) {
	if f.RecentDocsErr != nil {
		return nil, f.RecentDocsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var docs []service.Document
	for _, id := range f.docOrder {
		if excluded[id] {
			continue
		}
		docs = append(docs, f.docs[id])
		if len(docs) == limit {
			break
		}
	}
	return docs, nil
}

// GetDocument implements service.Service.
func (f *FakeService) GetDocument(ctx context.Context, id string) (service.Document, error) {
	if f.GetDocumentErr != nil {
		return service.Document{}, f.GetDocumentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return service.Document{}, ErrNotFound
	}
	return doc, nil
}

// DailyNote implements service.Service.
func (f *FakeService) DailyNote(ctx context.Context, notebookID string) (string, error) {
	if f.DailyNoteErr != nil {
		return "", f.DailyNoteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log("dailyNote %s", notebookID)
	return f.DailyNoteID, nil
}

// FindHeadingWithAttr implements service.Service.
func (f *FakeService) FindHeadingWithAttr(ctx context.Context, docID, attrName string) (string, error) {
	if f.FindHeadingErr != nil {
		return "", f.FindHeadingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.created {
		if b.ParentID == docID && strings.HasPrefix(b.Markdown, "#") && f.attrs[b.ID][attrName] == "true" {
			return b.ID, nil
		}
	}
	return "", nil
}

// PrependBlock implements service.Service.
func (f *FakeService) PrependBlock(ctx context.Context, parentID, markdown string) (string, error) {
	if f.PrependErr != nil {
		return "", f.PrependErr
	}
	return f.insert("prepend", parentID, markdown, true)
}

// AppendBlock implements service.Service.
func (f *FakeService) AppendBlock(ctx context.Context, parentID, markdown string) (string, error) {
	if f.AppendErr != nil {
		return "", f.AppendErr
	}
	return f.insert("append", parentID, markdown, false)
}

func (f *FakeService) insert(op, parentID, markdown string, front bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("blk-%d", f.nextID)
	b := createdBlock{ID: id, ParentID: parentID, Markdown: markdown}
	if front {
		f.created = append([]createdBlock{b}, f.created...)
	} else {
		f.created = append(f.created, b)
	}
	f.log("%s %s %q", op, parentID, markdown)
	return id, nil
}

// SetBlockAttrs implements service.Service.
func (f *FakeService) SetBlockAttrs(ctx context.Context, id string, attrs map[string]string) error {
	if f.SetAttrsErr != nil {
		return f.SetAttrsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		f.setAttr(id, k, attrs[k])
		pairs[i] = k + "=" + attrs[k]
	}
	f.log("setAttrs %s %s", id, strings.Join(pairs, " "))
	return nil
}

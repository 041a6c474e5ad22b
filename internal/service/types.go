// Package service defines the backend-agnostic interface for host
// operations.
package service

import "time"

// Notebook is a host notebook (the "box" a block row lives in).
type Notebook struct {
	ID     string
	Name   string
	Icon   string
	Sort   int
	Closed bool
}

// Document is a host document's display metadata.
type Document struct {
	ID      string
	Name    string
	HPath   string
	Updated time.Time
}

package task

import "fmt"

// StatusDefinition is one user-definable task status.
type StatusDefinition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	IsCompleted bool   `json:"isCompleted"`
}

// StatusConfig is the user-authored status set: an ordered list of
// definitions, the board columns to show, and the status assigned to new
// tasks. Invalid configs can exist transiently; ValidateStatusConfig
// flags them rather than construction preventing them.
type StatusConfig struct {
	Statuses       []StatusDefinition `json:"statuses"`
	VisibleColumns []string           `json:"visibleColumns"`
	DefaultStatus  string             `json:"defaultStatus"`
}

// ValidationResult carries the outcome of a status config check with
// every violation found, not just the first.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// DefaultStatusConfig returns the built-in status set. A fresh value is
// returned each call so callers can modify it freely.
func DefaultStatusConfig() StatusConfig {
	return StatusConfig{
		Statuses: []StatusDefinition{
			{ID: StatusTodo, Label: "To Do"},
			{ID: StatusInProgress, Label: "In Progress"},
			{ID: StatusReview, Label: "In Review"},
			{ID: StatusDone, Label: "Done", IsCompleted: true},
			{ID: StatusArchived, Label: "Archived", IsCompleted: true},
			{ID: StatusOther, Label: "Other"},
		},
		VisibleColumns: []string{StatusTodo, StatusInProgress, StatusReview, StatusDone},
		DefaultStatus:  StatusTodo,
	}
}

// GetStatusConfig returns the supplied configuration, or the built-in
// default when it is absent or defines no statuses.
func GetStatusConfig(cfg *StatusConfig) StatusConfig {
	if cfg == nil || len(cfg.Statuses) == 0 {
		return DefaultStatusConfig()
	}
	return *cfg
}

// GetStatusDefinition looks up a status definition by id.
func GetStatusDefinition(statusID string, cfg *StatusConfig) (StatusDefinition, bool) {
	for _, s := range GetStatusConfig(cfg).Statuses {
		if s.ID == statusID {
			return s, true
		}
	}
	return StatusDefinition{}, false
}

// StatusLabel returns the display label for a status id, falling back to
// the id itself for unknown statuses.
func StatusLabel(statusID string, cfg *StatusConfig) string {
	if def, ok := GetStatusDefinition(statusID, cfg); ok {
		return def.Label
	}
	return statusID
}

// IsStatusCompleted reports whether a status id is a completed-type
// status in the active configuration.
func IsStatusCompleted(statusID string, cfg *StatusConfig) bool {
	def, ok := GetStatusDefinition(statusID, cfg)
	return ok && def.IsCompleted
}

// VisibleStatuses returns the status definitions selected as visible
// columns, in definition order.
func VisibleStatuses(cfg *StatusConfig) []StatusDefinition {
	active := GetStatusConfig(cfg)
	var visible []StatusDefinition
	for _, s := range active.Statuses {
		if containsString(active.VisibleColumns, s.ID) {
			visible = append(visible, s)
		}
	}
	return visible
}

// StatusIDs returns every status id in the configuration, in order.
func StatusIDs(cfg *StatusConfig) []string {
	active := GetStatusConfig(cfg)
	ids := make([]string, len(active.Statuses))
	for i, s := range active.Statuses {
		ids[i] = s.ID
	}
	return ids
}

// ValidateStatusConfig checks a status configuration and accumulates
// every violation. It never fails; the result lists all problems found.
func ValidateStatusConfig(cfg StatusConfig) ValidationResult {
	var errs []string

	if len(cfg.Statuses) == 0 {
		errs = append(errs, "at least one status must be defined")
	}

	seen := make(map[string]bool)
	for _, s := range cfg.Statuses {
		switch {
		case s.ID == "":
			errs = append(errs, "status id must not be empty")
		case seen[s.ID]:
			errs = append(errs, fmt.Sprintf("duplicate status id %q", s.ID))
		default:
			seen[s.ID] = true
		}
		if s.Label == "" {
			errs = append(errs, fmt.Sprintf("status %q has no display label", s.ID))
		}
	}

	if cfg.DefaultStatus == "" {
		errs = append(errs, "a default status must be specified")
	} else if !seen[cfg.DefaultStatus] {
		errs = append(errs, fmt.Sprintf("default status %q does not exist", cfg.DefaultStatus))
	}

	for _, col := range cfg.VisibleColumns {
		if !seen[col] {
			errs = append(errs, fmt.Sprintf("visible column %q does not exist", col))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// CompletedStatusID returns the id used when marking a task done: the
// first completed-type status in the configuration, or StatusDone.
func CompletedStatusID(cfg *StatusConfig) string {
	for _, s := range GetStatusConfig(cfg).Statuses {
		if s.IsCompleted {
			return s.ID
		}
	}
	return StatusDone
}

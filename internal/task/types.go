// Package task implements the normalized task model: parsing raw host
// blocks into tasks, and filtering, sorting, grouping and summarizing them.
package task

import "time"

// Custom attribute names the host stores on task blocks.
const (
	AttrStatus        = "custom-task-status"
	AttrPriority      = "custom-task-priority"
	AttrDueDate       = "custom-task-duedate"
	AttrCompletedTime = "custom-task-completed-time"
	AttrArchivedTime  = "custom-task-archived-time"
	AttrDailyTodo     = "custom-daily-todo"
	AttrExclude       = "custom-task-exclude"
)

// Built-in status ids. User configuration may define additional ones;
// StatusOther is the sentinel for a status value the active configuration
// does not recognize.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
	StatusArchived   = "archived"
	StatusOther      = "__other__"
)

// Priority values. Anything else in the priority attribute is ignored.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// TaskBlock is a raw block row as returned by the host's SQL query API.
// Field tags match the host's column names.
type TaskBlock struct {
	ID       string `json:"id"`
	RootID   string `json:"root_id"`
	ParentID string `json:"parent_id"`
	Box      string `json:"box"`
	BoxName  string `json:"boxName,omitempty"`
	Path     string `json:"path"`
	HPath    string `json:"hpath"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	FContent string `json:"fcontent"`
	Markdown string `json:"markdown"`
	Type     string `json:"type"`
	SubType  string `json:"subtype"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
	IAL      string `json:"ial"`
	Sort     int    `json:"sort"`
}

// Task is the normalized, view-independent task record derived from a
// TaskBlock. It is never mutated in place; any change is written back
// through the host attribute API and the task re-derived.
type Task struct {
	ID       string
	Content  string
	Markdown string

	Status    string
	Completed bool
	Priority  string // empty when unset

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time

	NotebookID   string
	NotebookName string
	DocID        string
	DocName      string
	DocPath      string

	Tags     []string
	Assignee string
	Progress *int

	CustomAttrs map[string]string

	Raw *TaskBlock
}

// QuickFilter selects a predefined filter shortcut.
type QuickFilter string

const (
	QuickFilterAll   QuickFilter = "all"
	QuickFilterToday QuickFilter = "today"
)

// NotebookMode chooses whether a notebook filter includes or excludes
// the listed notebooks.
type NotebookMode string

const (
	NotebookInclude NotebookMode = "include"
	NotebookExclude NotebookMode = "exclude"
)

// NotebookFilter restricts tasks to (or away from) a set of notebooks.
type NotebookFilter struct {
	Enabled     bool
	Mode        NotebookMode
	NotebookIDs []string
}

// DateRange bounds a date dimension. Start is inclusive; End is extended
// to the end of its calendar day before comparison, so it is inclusive
// for the whole day.
type DateRange struct {
	Enabled bool
	Start   *time.Time
	End     *time.Time
}

// Filter is a declarative, fully optional composite of predicates.
// Every field is independent; the zero value matches everything.
type Filter struct {
	Quick      QuickFilter
	Notebooks  *NotebookFilter
	Statuses   []string
	Priorities []string
	Created    *DateRange
	Due        *DateRange
	Completed  *DateRange
	Keyword    string
	Tags       []string

	// ShowCompleted drops completed tasks only when explicitly false.
	ShowCompleted *bool
}

// Stats summarizes a task list.
type Stats struct {
	Total          int
	Completed      int
	InProgress     int
	Overdue        int
	CompletionRate int // rounded percentage, 0 for an empty list
}

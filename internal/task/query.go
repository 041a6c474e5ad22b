package task

import (
	"fmt"
	"strings"
)

// queryLimit caps the task query; the host refuses unbounded scans anyway.
const queryLimit = 2000

// BuildTaskQuery builds the SQL statement for task retrieval: list-item
// blocks of the task subtype, minus blocks opted out via the exclude
// attribute, newest first.
func BuildTaskQuery(f Filter) string {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM blocks WHERE type = 'i' AND subtype = 't'")
	fmt.Fprintf(&sb,
		" AND id NOT IN (SELECT block_id FROM attributes WHERE name = '%s' AND value = 'true')",
		AttrExclude)

	if f.Notebooks != nil && f.Notebooks.Enabled && len(f.Notebooks.NotebookIDs) > 0 {
		quoted := make([]string, len(f.Notebooks.NotebookIDs))
		for i, id := range f.Notebooks.NotebookIDs {
			quoted[i] = "'" + EscapeSQL(id) + "'"
		}
		op := "IN"
		if f.Notebooks.Mode == NotebookExclude {
			op = "NOT IN"
		}
		fmt.Fprintf(&sb, " AND box %s (%s)", op, strings.Join(quoted, ","))
	}

	fmt.Fprintf(&sb, " ORDER BY created DESC LIMIT %d", queryLimit)
	return sb.String()
}

// EscapeSQL doubles single quotes for embedding a value in a host SQL
// string literal.
func EscapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

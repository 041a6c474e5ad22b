package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"sytask/internal/config"
	"sytask/internal/exitcode"
	"sytask/internal/output"
	"sytask/internal/service"
	"sytask/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `sytask` (no args) and `sytask list`.
type ListCmd struct {
	statuses      string
	priorities    string
	notebooks     string
	excludeBooks  string
	today         bool
	keyword       string
	tags          string
	hideCompleted bool
	sortKey       string
	sortOrder     string
	groupKey      string
	dueAfter      string
	dueBefore     string
	createdAfter  string
	createdBefore string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "sytask list [--status <ids>] [--priority <levels>] [--group <key>] [filters...]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.statuses, "status", "", "")
	fs.StringVar(&c.priorities, "priority", "", "")
	fs.StringVar(&c.notebooks, "notebook", "", "")
	fs.StringVar(&c.excludeBooks, "exclude-notebooks", "", "")
	fs.BoolVar(&c.today, "today", false, "")
	fs.StringVar(&c.keyword, "keyword", "", "")
	fs.StringVar(&c.tags, "tag", "", "")
	fs.BoolVar(&c.hideCompleted, "hide-completed", false, "")
	fs.StringVar(&c.sortKey, "sort", "created", "")
	fs.StringVar(&c.sortOrder, "order", "desc", "")
	fs.StringVar(&c.groupKey, "group", "", "")
	fs.StringVar(&c.dueAfter, "due-after", "", "")
	fs.StringVar(&c.dueBefore, "due-before", "", "")
	fs.StringVar(&c.createdAfter, "created-after", "", "")
	fs.StringVar(&c.createdBefore, "created-before", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	filter, err := c.buildFilter()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	key, order, err := parseSort(c.sortKey, c.sortOrder)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := fetchTasks(ctx, svc, filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	tasks = task.Sort(tasks, key, order)

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if c.groupKey == "" {
		for i, t := range tasks {
			output.FormatTask(out, i+1, t)
		}
		return exitcode.Success
	}

	groups, labelOf, err := groupTasks(tasks, c.groupKey, settings.Statuses)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	num := 1
	for _, g := range groups {
		output.FormatGroupHeader(out, labelOf(g.Key), len(g.Tasks))
		for _, t := range g.Tasks {
			output.FormatTaskIndented(out, num, t)
			num++
		}
	}
	return exitcode.Success
}

func (c *ListCmd) buildFilter() (task.Filter, error) {
	var f task.Filter

	if c.today {
		f.Quick = task.QuickFilterToday
	}
	f.Statuses = splitList(c.statuses)
	f.Priorities = splitList(c.priorities)
	f.Keyword = c.keyword
	f.Tags = splitList(c.tags)

	if ids := splitList(c.notebooks); len(ids) > 0 {
		f.Notebooks = &task.NotebookFilter{Enabled: true, Mode: task.NotebookInclude, NotebookIDs: ids}
	} else if ids := splitList(c.excludeBooks); len(ids) > 0 {
		f.Notebooks = &task.NotebookFilter{Enabled: true, Mode: task.NotebookExclude, NotebookIDs: ids}
	}

	var err error
	if f.Due, err = parseRange(c.dueAfter, c.dueBefore); err != nil {
		return f, err
	}
	if f.Created, err = parseRange(c.createdAfter, c.createdBefore); err != nil {
		return f, err
	}

	if c.hideCompleted {
		show := false
		f.ShowCompleted = &show
	}
	return f, nil
}

// fetchTasks pulls raw task rows from the host and normalizes them.
func fetchTasks(ctx context.Context, svc service.Service, filter task.Filter) ([]task.Task, error) {
	blocks, err := svc.ListTaskBlocks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return task.Apply(task.TransformAll(blocks), filter), nil
}

// groupTasks partitions tasks by the given key and returns a label
// function for group headers.
func groupTasks(tasks []task.Task, key string, statuses *task.StatusConfig) ([]task.Group, func(string) string, error) {
	switch key {
	case "status":
		return task.GroupByStatus(tasks), func(id string) string {
			return task.StatusLabel(id, statuses)
		}, nil
	case "notebook":
		names := make(map[string]string)
		for _, t := range tasks {
			names[t.NotebookID] = t.NotebookName
		}
		return task.GroupByNotebook(tasks), func(id string) string {
			if n := names[id]; n != "" {
				return n
			}
			return id
		}, nil
	case "priority":
		return task.GroupByPriority(tasks), func(p string) string { return p }, nil
	default:
		return nil, nil, fmt.Errorf("invalid group key: %s", key)
	}
}

func parseSort(key, order string) (task.SortKey, task.SortOrder, error) {
	k := task.SortKey(key)
	switch k {
	case task.SortCreated, task.SortUpdated, task.SortPriority, task.SortDueDate:
	default:
		return "", "", fmt.Errorf("invalid sort key: %s", key)
	}

	o := task.SortOrder(order)
	switch o {
	case task.OrderAsc, task.OrderDesc:
	default:
		return "", "", fmt.Errorf("invalid sort order: %s", order)
	}
	return k, o, nil
}

// parseRange builds a date range from --*-after/--*-before flag values.
func parseRange(after, before string) (*task.DateRange, error) {
	if after == "" && before == "" {
		return nil, nil
	}
	r := &task.DateRange{Enabled: true}
	if after != "" {
		t, err := parseDay(after)
		if err != nil {
			return nil, err
		}
		r.Start = t
	}
	if before != "" {
		t, err := parseDay(before)
		if err != nil {
			return nil, err
		}
		r.End = t
	}
	return r, nil
}

func parseDay(s string) (*time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", s)
	}
	return &t, nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

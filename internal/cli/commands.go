package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/recur"
	"github.com/nhle/tasktrack/internal/theme"
)

func (r *Runner) cmdAdd(description string) error {
	if description == "" {
		return fmt.Errorf("usage: add <description>")
	}
	t := r.list.Add(description)
	if err := r.persist(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "added #%d\n", t.ID)
	return nil
}

func (r *Runner) cmdSub(args []string, line string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: sub <parent-id> <description>")
	}
	parentID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}
	description := rest(rest(line, "sub"), args[0])
	t, err := r.list.AddSubtask(parentID, description)
	if err != nil {
		return err
	}
	if err := r.persist(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "added #%d under #%d\n", t.ID, parentID)
	return nil
}

func (r *Runner) cmdSetDone(args []string, done bool) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	var n int
	var missing []int
	if done {
		// Only tasks that actually transition get a next occurrence;
		// CompleteMany succeeds on already-done tasks too.
		transitioned := make(map[int]bool, len(ids))
		for _, id := range ids {
			if t, err := r.list.Get(id); err == nil && !t.Completed {
				transitioned[id] = true
			}
		}
		n, missing = r.list.CompleteMany(ids)
		r.spawnRecurring(ids, transitioned)
	} else {
		n, missing = r.list.UncompleteMany(ids)
	}
	if err := r.persist(); err != nil {
		return err
	}
	r.reportBulk(n, missing, "updated")
	return nil
}

func (r *Runner) cmdToggle(args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	n, missing := r.list.ToggleMany(ids)
	// A toggle always transitions, so any id that is completed now
	// just became completed.
	completed := make(map[int]bool, len(ids))
	for _, id := range ids {
		if t, err := r.list.Get(id); err == nil && t.Completed {
			completed[id] = true
		}
	}
	r.spawnRecurring(ids, completed)
	if err := r.persist(); err != nil {
		return err
	}
	r.reportBulk(n, missing, "updated")
	return nil
}

func (r *Runner) cmdRemove(args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	n, missing := r.list.RemoveMany(ids)
	if err := r.persist(); err != nil {
		return err
	}
	r.reportBulk(n, missing, "removed")
	return nil
}

func (r *Runner) cmdPriority(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: pri <low|medium|high> <id...>")
	}
	p, err := model.ParsePriority(args[0])
	if err != nil {
		return err
	}
	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}
	n, missing := r.list.SetPriorityMany(ids, p)
	if err := r.persist(); err != nil {
		return err
	}
	r.reportBulk(n, missing, "updated")
	return nil
}

func (r *Runner) cmdDue(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: due <YYYY-MM-DD|clear> <id...>")
	}
	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}
	var n int
	var missing []int
	if args[0] == "clear" || args[0] == "-" {
		n, missing = r.list.SetDueDateMany(ids, nil)
	} else {
		d, err := parseDate(args[0])
		if err != nil {
			return err
		}
		n, missing = r.list.SetDueDateMany(ids, &d)
	}
	if err := r.persist(); err != nil {
		return err
	}
	r.reportBulk(n, missing, "updated")
	return nil
}

func (r *Runner) cmdCategory(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: cat <name|-> <id...>")
	}
	category := args[0]
	if category == "-" {
		category = ""
	}
	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}
	n, missing := r.list.SetCategoryMany(ids, category)
	if err := r.persist(); err != nil {
		return err
	}
	r.reportBulk(n, missing, "updated")
	return nil
}

func (r *Runner) cmdRecur(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: recur <daily|weekly|monthly|none> <id...>")
	}
	rec, err := model.ParseRecurrence(args[0])
	if err != nil {
		return err
	}
	ids, err := parseIDs(args[1:])
	if err != nil {
		return err
	}
	n, missing := r.list.SetRecurrenceMany(ids, rec)
	if err := r.persist(); err != nil {
		return err
	}
	r.reportBulk(n, missing, "updated")
	return nil
}

func (r *Runner) cmdEdit(args []string, line string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: edit <id> <description>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}
	description := rest(rest(line, "edit"), args[0])
	if _, err := r.list.EditDescription(id, description); err != nil {
		return err
	}
	if err := r.persist(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "updated #%d\n", id)
	return nil
}

func (r *Runner) cmdDep(args []string) error {
	taskID, dependsOnID, err := parseEdge(args)
	if err != nil {
		return err
	}
	if err := r.list.AddDependency(taskID, dependsOnID); err != nil {
		return err
	}
	if err := r.persist(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "#%d now blocked by #%d\n", taskID, dependsOnID)
	return nil
}

func (r *Runner) cmdUndep(args []string) error {
	taskID, dependsOnID, err := parseEdge(args)
	if err != nil {
		return err
	}
	if err := r.list.RemoveDependency(taskID, dependsOnID); err != nil {
		return err
	}
	if err := r.persist(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "#%d no longer blocked by #%d\n", taskID, dependsOnID)
	return nil
}

func parseEdge(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: dep <id> <blocked-by-id>")
	}
	taskID, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid task id %q", args[0])
	}
	dependsOnID, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid task id %q", args[1])
	}
	return taskID, dependsOnID, nil
}

func (r *Runner) cmdDeps(args []string) error {
	ids, err := parseIDs(args)
	if err != nil || len(ids) != 1 {
		return fmt.Errorf("usage: deps <id>")
	}
	t, err := r.list.Get(ids[0])
	if err != nil {
		return err
	}
	if len(t.DependsOn) == 0 {
		fmt.Fprintf(r.out, "#%d is not blocked by any task\n", t.ID)
	} else {
		fmt.Fprintf(r.out, "#%d is blocked by: %s\n", t.ID, joinIDs(t.DependsOn))
	}
	dependents := r.list.Dependents(t.ID)
	if len(dependents) > 0 {
		fmt.Fprintf(r.out, "#%d blocks: %s\n", t.ID, joinIDs(dependents))
	}
	return nil
}

func (r *Runner) cmdShow(args []string) error {
	ids, err := parseIDs(args)
	if err != nil || len(ids) != 1 {
		return fmt.Errorf("usage: show <id>")
	}
	t, err := r.list.Get(ids[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.renderTask(t, 0))
	for _, sub := range r.list.Subtasks(t.ID) {
		fmt.Fprintln(r.out, r.renderTask(sub, 1))
	}
	return nil
}

// cmdList builds a filter and sort from the listing arguments and
// renders the matching tasks. Each filter word may appear once; the
// engine reports a conflict otherwise.
func (r *Runner) cmdList(args []string) error {
	filter := engine.NewFilter()
	key, err := engine.ParseSortKey(r.cfg.DefaultSort)
	if err != nil {
		key = engine.SortByID
	}
	desc := r.cfg.DefaultSortDesc

	for i := 0; i < len(args); i++ {
		var err error
		switch arg := strings.ToLower(args[i]); arg {
		case "pending":
			err = filter.SetStatus(false)
		case "completed", "done":
			err = filter.SetStatus(true)
		case "low", "medium", "high":
			p, _ := model.ParsePriority(arg)
			err = filter.SetPriority(p)
		case "overdue":
			err = filter.SetOverdue(engine.OverdueOnly)
		case "upcoming":
			err = filter.SetOverdue(engine.NotOverdueOnly)
		case "cat", "category":
			if i+1 >= len(args) {
				return fmt.Errorf("cat requires a name")
			}
			i++
			err = filter.SetCategory(args[i])
		case "sort":
			if i+1 >= len(args) {
				return fmt.Errorf("sort requires a key")
			}
			i++
			key, err = engine.ParseSortKey(args[i])
		case "desc":
			desc = true
		case "asc":
			desc = false
		default:
			return fmt.Errorf("unknown list argument %q", args[i])
		}
		if err != nil {
			return err
		}
	}

	tasks := filter.Apply(r.list.Tasks(), r.now())
	engine.Sort(tasks, key, desc)

	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "no tasks")
		return nil
	}
	for _, t := range tasks {
		indent := 0
		if t.IsSubtask() {
			indent = 1
		}
		fmt.Fprintln(r.out, r.renderTask(t, indent))
	}
	return nil
}

func (r *Runner) cmdSearch(keyword string) error {
	if keyword == "" {
		return fmt.Errorf("usage: search <keyword>")
	}
	tasks := r.list.Search(keyword)
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "no matches")
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintln(r.out, r.renderTask(t, 0))
	}
	return nil
}

func (r *Runner) cmdStats() error {
	s := r.list.Stats()
	fmt.Fprintf(r.out, "total: %d  completed: %d  pending: %d  (%.1f%%)\n",
		s.Total, s.Completed, s.Pending, s.CompletionPercentage)
	fmt.Fprintf(r.out, "high: %d  medium: %d  low: %d\n",
		s.HighPriority, s.MediumPriority, s.LowPriority)
	return nil
}

func (r *Runner) cmdCategories() error {
	categories := r.list.Categories()
	if len(categories) == 0 {
		fmt.Fprintln(r.out, "no categories")
		return nil
	}
	fmt.Fprintln(r.out, strings.Join(categories, "\n"))
	return nil
}

func (r *Runner) cmdProject(args []string) error {
	if r.store == nil {
		return fmt.Errorf("projects require persistence")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: project list|use|add|rm|rename")
	}
	ctx := context.Background()

	switch args[0] {
	case "list":
		projects, err := r.store.GetProjects(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			marker := "  "
			if p.ID == r.projectID {
				marker = "* "
			}
			fmt.Fprintf(r.out, "%s%s\n", marker, p.Name)
		}
		return nil

	case "use":
		if len(args) != 2 {
			return fmt.Errorf("usage: project use <name>")
		}
		project, err := r.store.EnsureProject(ctx, args[1])
		if err != nil {
			return err
		}
		list, err := r.store.LoadTasks(ctx, project.ID)
		if err != nil {
			return err
		}
		r.list = list
		r.projectID = project.ID
		r.cfg.Project = args[1]
		fmt.Fprintf(r.out, "switched to project %s\n", args[1])
		return nil

	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: project add <name>")
		}
		if _, err := r.store.CreateProject(ctx, model.Project{Name: args[1]}); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "created project %s\n", args[1])
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: project rm <name>")
		}
		project, err := r.store.GetProjectByName(ctx, args[1])
		if err != nil {
			return err
		}
		if project.ID == r.projectID {
			return fmt.Errorf("cannot remove the active project")
		}
		if err := r.store.DeleteProject(ctx, project.ID); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "removed project %s\n", args[1])
		return nil

	case "rename":
		if len(args) != 3 {
			return fmt.Errorf("usage: project rename <old> <new>")
		}
		project, err := r.store.GetProjectByName(ctx, args[1])
		if err != nil {
			return err
		}
		if err := r.store.RenameProject(ctx, project.ID, args[2]); err != nil {
			return err
		}
		if r.cfg.Project == args[1] {
			r.cfg.Project = args[2]
		}
		fmt.Fprintf(r.out, "renamed project %s to %s\n", args[1], args[2])
		return nil
	}
	return fmt.Errorf("unknown project subcommand %q", args[0])
}

// spawnRecurring materializes next occurrences for the ids that
// actually transitioned to completed.
func (r *Runner) spawnRecurring(ids []int, transitioned map[int]bool) {
	for _, id := range ids {
		if !transitioned[id] {
			continue
		}
		created, ok := recur.SpawnNext(r.list, id)
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "recurring: #%d next occurrence is #%d due %s\n",
			id, created.ID, created.DueDate.Format("2006-01-02"))
	}
}

func (r *Runner) reportBulk(succeeded int, missing []int, verb string) {
	fmt.Fprintf(r.out, "%d task(s) %s\n", succeeded, verb)
	if len(missing) > 0 {
		fmt.Fprintln(r.out, theme.ErrorStyle.Render("not found: "+joinIDs(missing)))
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// Package cli implements the line-oriented command interpreter. It
// translates commands into engine calls, persists mutated lists
// through the store, and renders results; all argument parsing and
// user-facing text lives here, outside the engine.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/tasktrack/internal/config"
	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/store"
	"github.com/nhle/tasktrack/internal/theme"
)

// Runner executes commands against the active project's task list.
type Runner struct {
	list      *engine.List
	store     store.Store // nil disables persistence
	projectID string
	cfg       *config.Config
	out       io.Writer
	now       func() time.Time
}

// New creates a command runner. The store may be nil, in which case
// mutations are kept in memory only.
func New(list *engine.List, st store.Store, projectID string, cfg *config.Config, out io.Writer) *Runner {
	return &Runner{
		list:      list,
		store:     st,
		projectID: projectID,
		cfg:       cfg,
		out:       out,
		now:       time.Now,
	}
}

// List exposes the active task list (used when handing off to the TUI).
func (r *Runner) List() *engine.List {
	return r.list
}

// Run reads commands line by line until EOF or quit.
func (r *Runner) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		quit, err := r.Execute(scanner.Text())
		if err != nil {
			fmt.Fprintln(r.out, theme.ErrorStyle.Render("error: "+err.Error()))
		}
		if quit {
			break
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It reports whether the caller
// should stop reading further commands.
func (r *Runner) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		r.printHelp()
		return false, nil
	case "add":
		return false, r.cmdAdd(rest(line, cmd))
	case "sub":
		return false, r.cmdSub(args, line)
	case "done":
		return false, r.cmdSetDone(args, true)
	case "undone":
		return false, r.cmdSetDone(args, false)
	case "toggle":
		return false, r.cmdToggle(args)
	case "rm":
		return false, r.cmdRemove(args)
	case "pri":
		return false, r.cmdPriority(args)
	case "due":
		return false, r.cmdDue(args)
	case "cat":
		return false, r.cmdCategory(args)
	case "recur":
		return false, r.cmdRecur(args)
	case "edit":
		return false, r.cmdEdit(args, line)
	case "dep":
		return false, r.cmdDep(args)
	case "undep":
		return false, r.cmdUndep(args)
	case "deps":
		return false, r.cmdDeps(args)
	case "show":
		return false, r.cmdShow(args)
	case "list", "ls":
		return false, r.cmdList(args)
	case "search":
		return false, r.cmdSearch(rest(line, cmd))
	case "stats":
		return false, r.cmdStats()
	case "categories":
		return false, r.cmdCategories()
	case "project":
		return false, r.cmdProject(args)
	}
	return false, fmt.Errorf("unknown command %q (try help)", cmd)
}

// rest returns everything on the line after the command word, with
// surrounding whitespace trimmed, preserving internal spacing.
func rest(line, cmd string) string {
	trimmed := strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimPrefix(trimmed, cmd))
}

// parseIDs converts each argument to a task id.
func parseIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least one task id")
	}
	ids := make([]int, len(args))
	for i, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q", a)
		}
		ids[i] = id
	}
	return ids, nil
}

// parseDate parses a YYYY-MM-DD calendar date.
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// persist snapshots the list through the store, if one is attached.
func (r *Runner) persist() error {
	if r.store == nil {
		return nil
	}
	if err := r.store.SaveTasks(context.Background(), r.projectID, r.list); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (r *Runner) printHelp() {
	help := `commands:
  add <description>              create a task
  sub <parent-id> <description>  create a subtask
  done|undone|toggle <id...>     change completion state
  rm <id...>                     remove tasks (subtasks cascade)
  pri <low|medium|high> <id...>  set priority
  due <YYYY-MM-DD|clear> <id...> set or clear due date
  cat <name|-> <id...>           set or clear category
  recur <daily|weekly|monthly|none> <id...>
  edit <id> <description>        replace description
  dep <id> <blocked-by-id>       add dependency
  undep <id> <blocked-by-id>     remove dependency
  deps <id>                      show dependencies and dependents
  show <id>                      show one task with subtasks
  list [pending|completed] [low|medium|high] [overdue|upcoming]
       [cat <name>] [sort <key>] [desc]
  search <keyword>               find tasks by description
  stats                          show counters
  categories                     list categories in use
  project list|use|add|rm|rename
  help, quit`
	fmt.Fprintln(r.out, theme.HelpStyle.Render(help))
}

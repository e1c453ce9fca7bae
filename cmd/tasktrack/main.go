package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktrack/internal/app"
	"github.com/nhle/tasktrack/internal/cli"
	"github.com/nhle/tasktrack/internal/config"
	"github.com/nhle/tasktrack/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dbPath := flag.String("db", "", "path to sqlite database")
	project := flag.String("project", "", "active project name")
	flag.Parse()

	if err := run(*configPath, *dbPath, *project, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "tasktrack:", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath, project string, args []string) error {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if project != "" {
		cfg.Project = project
	}

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.Printf("closing store: %v", cerr)
		}
	}()

	ctx := context.Background()
	proj, err := s.EnsureProject(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("ensuring project %q: %w", cfg.Project, err)
	}

	list, err := s.LoadTasks(ctx, proj.ID)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	if len(args) > 0 && args[0] == "ui" {
		root := app.New(list, s, proj.ID, proj.Name)
		p := tea.NewProgram(root, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running ui: %w", err)
		}
		return nil
	}

	runner := cli.New(list, s, proj.ID, cfg, os.Stdout)
	return runner.Run(os.Stdin)
}

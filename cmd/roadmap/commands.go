package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-roadmap/internal/curriculum"
	"github.com/p-n-ai/pai-roadmap/internal/platform/config"
	"github.com/p-n-ai/pai-roadmap/internal/render"
	"github.com/p-n-ai/pai-roadmap/internal/roadmap"
	"github.com/p-n-ai/pai-roadmap/internal/session"
)

// newRootCmd creates the CLI with all subcommands bound to cfg.
func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "roadmap",
		Short:         "Walk through a prerequisite-gated learning roadmap",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.Curriculum.Path, "curriculum", cfg.Curriculum.Path, "Directory containing roadmap YAML files")

	root.AddCommand(
		newListCmd(cfg),
		newShowCmd(cfg),
		newPlayCmd(cfg),
		newExportCmd(cfg),
	)
	return root
}

func newListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available roadmaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := curriculum.NewLoader(cfg.Curriculum.Path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			roadmaps := loader.AllRoadmaps()
			if len(roadmaps) == 0 {
				fmt.Fprintf(out, "No roadmaps found in %s\n", cfg.Curriculum.Path)
				return nil
			}
			for _, r := range roadmaps {
				fmt.Fprintf(out, "%-20s %s (%d steps, %s)\n", r.ID, r.Title, len(r.Steps), render.Weeks(r.TotalWeeks()))
			}
			return nil
		},
	}
}

func newShowCmd(cfg *config.Config) *cobra.Command {
	var stepID int

	cmd := &cobra.Command{
		Use:   "show [roadmap-id]",
		Short: "Show a roadmap outline or a single step",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveRoadmap(cfg, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("step") {
				for _, s := range r.Steps {
					if s.ID == stepID {
						fmt.Fprintln(out, render.Card(s, false))
						return nil
					}
				}
				return fmt.Errorf("roadmap %s has no step %d", r.ID, stepID)
			}

			ctrl, err := roadmap.New(r.Steps)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, r.Title)
			fmt.Fprintln(out, render.Outline(ctrl.View()))
			return nil
		},
	}
	cmd.Flags().IntVar(&stepID, "step", 0, "Step id to show in detail")
	return cmd
}

func newPlayCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play [roadmap-id]",
		Short: "Start an interactive roadmap session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := curriculum.NewLoader(cfg.Curriculum.Path)
			if err != nil {
				return err
			}
			id, err := pickRoadmapID(cfg, loader, args)
			if err != nil {
				return err
			}

			engine := session.NewEngine(session.EngineConfig{
				Library:   loader,
				ExportDir: cfg.Export.Dir,
			})
			sessionID, reply, err := engine.Start(id)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reply)

			lines, readErr := readLines(ctx, cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				var line string
				select {
				case <-ctx.Done():
					fmt.Fprintln(out)
					return nil
				case l, ok := <-lines:
					if !ok {
						fmt.Fprintln(out)
						return readErr()
					}
					line = l
				}

				reply, err := engine.Handle(ctx, sessionID, line)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				if reply != "" {
					fmt.Fprintln(out, reply)
				}
				if isQuit(line) {
					return nil
				}
			}
		},
	}
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [roadmap-id]",
		Short: "Write a roadmap overview spreadsheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveRoadmap(cfg, args)
			if err != nil {
				return err
			}
			ctrl, err := roadmap.New(r.Steps)
			if err != nil {
				return err
			}
			if output == "" {
				output = r.ID + ".xlsx"
			}
			if err := session.ExportFile(output, ctrl.View()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", r.ID, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .xlsx path (default: <roadmap-id>.xlsx)")
	return cmd
}

// resolveRoadmap loads the roadmap named by args, the configured default, or
// a file path ending in .yaml/.yml.
func resolveRoadmap(cfg *config.Config, args []string) (curriculum.Roadmap, error) {
	if len(args) == 1 && isYAMLPath(args[0]) {
		if _, err := os.Stat(args[0]); err == nil {
			return curriculum.LoadFile(args[0])
		}
	}

	loader, err := curriculum.NewLoader(cfg.Curriculum.Path)
	if err != nil {
		return curriculum.Roadmap{}, err
	}
	id, err := pickRoadmapID(cfg, loader, args)
	if err != nil {
		return curriculum.Roadmap{}, err
	}
	r, ok := loader.GetRoadmap(id)
	if !ok {
		return curriculum.Roadmap{}, fmt.Errorf("roadmap not found: %s", id)
	}
	return r, nil
}

// pickRoadmapID chooses the roadmap from args, then LEARN_DEFAULT_ROADMAP,
// then the only roadmap in the library.
func pickRoadmapID(cfg *config.Config, loader *curriculum.Loader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Curriculum.DefaultRoadmap != "" {
		return cfg.Curriculum.DefaultRoadmap, nil
	}
	all := loader.AllRoadmaps()
	switch len(all) {
	case 0:
		return "", fmt.Errorf("no roadmaps found in %s", cfg.Curriculum.Path)
	case 1:
		return all[0].ID, nil
	default:
		ids := make([]string, 0, len(all))
		for _, r := range all {
			ids = append(ids, r.ID)
		}
		return "", fmt.Errorf("roadmap id required, one of: %s", strings.Join(ids, ", "))
	}
}

// readLines scans r on its own goroutine so an interrupt can end the session
// while a read is blocked. The channel closes at EOF, on a read error or when
// ctx is done; the returned func reports the read error once it has closed.
func readLines(ctx context.Context, r io.Reader) (<-chan string, func() error) {
	lines := make(chan string)
	var err error
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err = scanner.Err()
	}()
	return lines, func() error { return err }
}

func isYAMLPath(s string) bool {
	return strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

func isQuit(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimPrefix(fields[0], "/")) {
	case "quit", "exit":
		return true
	}
	return false
}

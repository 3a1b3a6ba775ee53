package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/p-n-ai/pai-roadmap/internal/curriculum"
	"github.com/p-n-ai/pai-roadmap/internal/render"
	"github.com/p-n-ai/pai-roadmap/internal/roadmap"
)

// Library resolves roadmaps by ID.
type Library interface {
	GetRoadmap(id string) (curriculum.Roadmap, bool)
}

// EngineConfig holds dependencies for the session engine.
type EngineConfig struct {
	Library   Library
	Store     Store
	ExportDir string // base directory for relative /export paths
}

// Engine turns learner commands into controller operations and renders replies.
type Engine struct {
	library   Library
	store     Store
	exportDir string
}

// NewEngine creates a new session engine.
func NewEngine(cfg EngineConfig) *Engine {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return &Engine{
		library:   cfg.Library,
		store:     store,
		exportDir: cfg.ExportDir,
	}
}

// Start opens a new session on the given roadmap and returns its ID along
// with the rendered first step.
func (e *Engine) Start(roadmapID string) (string, string, error) {
	if e.library == nil {
		return "", "", fmt.Errorf("no roadmap library configured")
	}
	r, ok := e.library.GetRoadmap(roadmapID)
	if !ok {
		return "", "", fmt.Errorf("roadmap not found: %s", roadmapID)
	}

	ctrl, err := roadmap.New(r.Steps)
	if err != nil {
		return "", "", fmt.Errorf("starting roadmap %s: %w", roadmapID, err)
	}

	id, err := e.store.Create(roadmapID, ctrl)
	if err != nil {
		return "", "", fmt.Errorf("creating session: %w", err)
	}

	slog.Info("session started", "session_id", id, "roadmap", roadmapID, "steps", len(r.Steps))

	v := ctrl.View()
	reply := fmt.Sprintf("%s\n%s\n\n%s\n\n%s", r.Title, render.Progress(v), render.Detail(v), "Type /help for commands.")
	return id, reply, nil
}

// Handle executes one command against a session and returns the reply.
// Rejected moves produce a notice, never an error; errors are reserved for
// unknown sessions and failed exports.
func (e *Engine) Handle(ctx context.Context, sessionID, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sess, err := e.store.Get(sessionID)
	if err != nil {
		return "", err
	}

	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	slog.Debug("processing command", "session_id", sessionID, "command", cmd)

	ctrl := sess.Controller
	switch cmd {
	case "next", "n":
		return e.handleNext(ctrl), nil

	case "prev", "previous", "p":
		if !ctrl.Previous() {
			return "You are on the first step.", nil
		}
		return render.Detail(ctrl.View()), nil

	case "done", "complete":
		step := ctrl.Selected()
		if !ctrl.MarkComplete() {
			return fmt.Sprintf("#%s %s is already completed.", step.Number, step.Title), nil
		}
		return fmt.Sprintf("Marked #%s %s as completed.\n%s", step.Number, step.Title, render.Progress(ctrl.View())), nil

	case "select", "go":
		return e.handleSelect(ctrl, args), nil

	case "show":
		return render.Detail(ctrl.View()), nil

	case "outline", "list":
		return render.Outline(ctrl.View()), nil

	case "progress":
		return render.Progress(ctrl.View()), nil

	case "prereqs", "prerequisites":
		chips := render.PrerequisiteChips(ctrl.PrerequisiteTitles())
		if chips == "" {
			return "This step has no prerequisites.", nil
		}
		return chips, nil

	case "export":
		return e.handleExport(sess, args)

	case "help":
		return helpText, nil

	case "quit", "exit":
		if err := e.store.End(sessionID); err != nil {
			return "", err
		}
		slog.Info("session ended", "session_id", sessionID, "roadmap", sess.RoadmapID)
		return "Session ended. Progress is not kept between sessions.", nil

	default:
		return fmt.Sprintf("Unknown command: %s\nUse /help to see available commands.", fields[0]), nil
	}
}

func (e *Engine) handleNext(ctrl *roadmap.Controller) string {
	before := ctrl.View()
	if !ctrl.Next() {
		return "You are on the last step."
	}
	v := ctrl.View()
	if !before.HasNext {
		return render.Detail(v)
	}
	want := before.Steps[before.SelectedIndex+1]
	if v.Selected.ID != want.ID && !v.IsUnlocked(want.ID) {
		return fmt.Sprintf("#%s %s is still locked.\n%s", want.Number, want.Title, render.Detail(v))
	}
	return render.Detail(v)
}

func (e *Engine) handleSelect(ctrl *roadmap.Controller, args []string) string {
	if len(args) != 1 {
		return "Usage: /select <step-id>"
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return "Usage: /select <step-id>"
	}

	if ctrl.Select(id) {
		return render.Detail(ctrl.View())
	}
	for _, s := range ctrl.Steps() {
		if s.ID == id {
			return fmt.Sprintf("#%s %s is locked. Complete the steps before it first.", s.Number, s.Title)
		}
	}
	return fmt.Sprintf("No step with id %d.", id)
}

func (e *Engine) handleExport(sess *Session, args []string) (string, error) {
	if len(args) != 1 {
		return "Usage: /export <file.xlsx>", nil
	}
	path := args[0]
	if !filepath.IsAbs(path) && e.exportDir != "" {
		path = filepath.Join(e.exportDir, path)
	}

	if err := ExportFile(path, sess.Controller.View()); err != nil {
		slog.Error("export failed", "session_id", sess.ID, "path", path, "error", err)
		return "", err
	}

	slog.Info("roadmap exported", "session_id", sess.ID, "path", path)
	return fmt.Sprintf("Exported roadmap to %s", path), nil
}

// ExportFile writes the workbook for v to path.
func ExportFile(path string, v roadmap.View) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := render.WriteWorkbook(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const helpText = `Commands:
  /next            complete this step and move to the next one
  /prev            go back one step
  /done            mark this step as completed
  /select <id>     jump to an unlocked step
  /show            show the current step
  /outline         list all steps
  /progress        show overall progress
  /prereqs         list prerequisites of this step
  /export <file>   write the roadmap to an .xlsx file
  /quit            end the session`

package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader loads and caches roadmaps from the filesystem.
type Loader struct {
	rootDir  string
	roadmaps map[string]Roadmap
	mu       sync.RWMutex
}

// NewLoader creates a new roadmap loader and loads all content.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir:  rootDir,
		roadmaps: make(map[string]Roadmap),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	slog.Info("curriculum loaded", "roadmaps", len(l.roadmaps))
	return l, nil
}

// GetRoadmap returns a roadmap by ID.
func (l *Loader) GetRoadmap(id string) (Roadmap, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.roadmaps[id]
	return r, ok
}

// AllRoadmaps returns all loaded roadmaps ordered by ID.
func (l *Loader) AllRoadmaps() []Roadmap {
	l.mu.RLock()
	defer l.mu.RUnlock()
	roadmaps := make([]Roadmap, 0, len(l.roadmaps))
	for _, r := range l.roadmaps {
		roadmaps = append(roadmaps, r)
	}
	sort.Slice(roadmaps, func(i, j int) bool { return roadmaps[i].ID < roadmaps[j].ID })
	return roadmaps
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			return l.loadRoadmap(path)
		}
		return nil
	})
}

func (l *Loader) loadRoadmap(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var probe struct {
		Steps yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil || probe.Steps.Kind == 0 {
		return nil // Not a roadmap file
	}

	r, err := Parse(data)
	if err != nil {
		slog.Warn("skipping invalid roadmap", "path", path, "error", err)
		return nil
	}

	l.mu.Lock()
	if _, exists := l.roadmaps[r.ID]; exists {
		slog.Warn("duplicate roadmap id, keeping first", "id", r.ID, "path", path)
	} else {
		l.roadmaps[r.ID] = r
	}
	l.mu.Unlock()

	return nil
}

// LoadFile reads and validates a single roadmap document.
func LoadFile(path string) (Roadmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roadmap{}, fmt.Errorf("reading roadmap: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return Roadmap{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a YAML roadmap document, validating it against the roadmap
// schema and the step list invariants.
func Parse(data []byte) (Roadmap, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Roadmap{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return Roadmap{}, err
	}

	var r Roadmap
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roadmap{}, fmt.Errorf("decoding roadmap: %w", err)
	}
	if err := CheckSteps(r.Steps); err != nil {
		return Roadmap{}, err
	}
	return r, nil
}

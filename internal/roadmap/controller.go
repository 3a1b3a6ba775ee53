// Package roadmap implements the progression state machine of a learning
// roadmap: step completion, sequential unlocking, progress and navigation.
package roadmap

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/p-n-ai/pai-roadmap/internal/curriculum"
)

// ErrInvalidRoadmap is returned when a controller cannot be built from a step list.
var ErrInvalidRoadmap = errors.New("invalid roadmap")

// Controller owns the progression state of one roadmap session.
//
// Every operation either applies or is a silent no-op; the bool results only
// report which. Derived views are computed from the current state on every call.
type Controller struct {
	steps     []curriculum.Step
	position  map[int]int // step id -> index in steps
	minID     int
	completed map[int]struct{}
	selected  int // step id
	mu        sync.Mutex
}

// New creates a controller for the given steps. The slice order is the
// navigation order. The first step is selected and nothing is completed.
func New(steps []curriculum.Step) (*Controller, error) {
	if err := curriculum.CheckSteps(steps); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoadmap, err)
	}

	c := &Controller{
		steps:     make([]curriculum.Step, len(steps)),
		position:  make(map[int]int, len(steps)),
		completed: make(map[int]struct{}),
	}
	copy(c.steps, steps)

	c.minID = steps[0].ID
	for i, s := range c.steps {
		c.position[s.ID] = i
		if s.ID < c.minID {
			c.minID = s.ID
		}
	}
	c.selected = c.steps[0].ID
	c.derive()

	return c, nil
}

// Select moves the selection to stepID if that step is unlocked.
func (c *Controller) Select(stepID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.position[stepID]; !ok || !c.unlocked(stepID) {
		return false
	}
	c.selected = stepID
	c.derive()
	return true
}

// Next completes the selected step if needed and advances to the following
// step. It is a no-op on the last step. When the following step is still
// locked, as with gapped ids, Next reports true for the completion but the
// selection heals to the first unlocked step.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.position[c.selected]
	if i >= len(c.steps)-1 {
		return false
	}
	c.completed[c.selected] = struct{}{}
	c.selected = c.steps[i+1].ID
	c.derive()
	return true
}

// Previous moves to the preceding step. It is a no-op on the first step and
// never changes the completed set.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.position[c.selected]
	if i == 0 {
		return false
	}
	c.selected = c.steps[i-1].ID
	c.derive()
	return true
}

// MarkComplete completes the selected step. Repeated calls are no-ops.
func (c *Controller) MarkComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, done := c.completed[c.selected]; done {
		return false
	}
	c.completed[c.selected] = struct{}{}
	c.derive()
	return true
}

// derive restores the selection invariant after a mutation: a locked
// selection moves to the first unlocked step in navigation order.
// Callers must hold c.mu.
func (c *Controller) derive() {
	if c.unlocked(c.selected) {
		return
	}
	for _, s := range c.steps {
		if c.unlocked(s.ID) {
			c.selected = s.ID
			return
		}
	}
}

// unlocked reports whether id is within the sequential unlock frontier:
// one past the highest completed id. With nothing completed the frontier is
// id 1, or the lowest id when the roadmap starts above 1. Callers must hold c.mu.
func (c *Controller) unlocked(id int) bool {
	return id <= c.frontier()
}

// frontier is the highest unlocked id. It saturates at math.MaxInt.
func (c *Controller) frontier() int {
	if len(c.completed) == 0 {
		return max(1, c.minID)
	}
	highest := math.MinInt
	for id := range c.completed {
		highest = max(highest, id)
	}
	if highest == math.MaxInt {
		return highest
	}
	return highest + 1
}

// completedIDs returns completed ids in ascending order. Callers must hold c.mu.
func (c *Controller) completedIDs() []int {
	ids := make([]int, 0, len(c.completed))
	for id := range c.completed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

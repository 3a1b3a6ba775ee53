package roadmap

import "github.com/p-n-ai/pai-roadmap/internal/curriculum"

// View is a consistent snapshot of the controller state and every derived
// value, taken under a single lock.
type View struct {
	Steps             []curriculum.Step
	Selected          curriculum.Step
	SelectedIndex     int
	SelectedCompleted bool
	Prerequisites     []curriculum.StepRef
	CompletedIDs      []int
	UnlockedIDs       []int
	TotalWeeks        int
	ProgressPercent   float64
	HasNext           bool
	HasPrevious       bool
}

// IsCompleted reports whether the step with id is in the snapshot's completed set.
func (v View) IsCompleted(id int) bool {
	for _, c := range v.CompletedIDs {
		if c == id {
			return true
		}
	}
	return false
}

// IsUnlocked reports whether the step with id was unlocked in the snapshot.
func (v View) IsUnlocked(id int) bool {
	for _, u := range v.UnlockedIDs {
		if u == id {
			return true
		}
	}
	return false
}

// Status is the progression state of a single step.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusUnlocked  Status = "unlocked"
	StatusCompleted Status = "completed"
)

// Status returns the state of the step with id in the snapshot.
func (v View) Status(id int) Status {
	switch {
	case v.IsCompleted(id):
		return StatusCompleted
	case v.IsUnlocked(id):
		return StatusUnlocked
	default:
		return StatusLocked
	}
}

// View returns a snapshot for renderers.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.position[c.selected]
	_, done := c.completed[c.selected]
	return View{
		Steps:             c.Steps(),
		Selected:          c.steps[i],
		SelectedIndex:     i,
		SelectedCompleted: done,
		Prerequisites:     c.prerequisiteTitles(),
		CompletedIDs:      c.completedIDs(),
		UnlockedIDs:       c.unlockedIDs(),
		TotalWeeks:        c.totalWeeks(),
		ProgressPercent:   c.progressPercent(),
		HasNext:           i < len(c.steps)-1,
		HasPrevious:       i > 0,
	}
}

// Steps returns a copy of the step list in navigation order.
func (c *Controller) Steps() []curriculum.Step {
	steps := make([]curriculum.Step, len(c.steps))
	copy(steps, c.steps)
	return steps
}

// Selected returns the currently selected step.
func (c *Controller) Selected() curriculum.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.position[c.selected]]
}

// SelectedIndex returns the position of the selected step in navigation order.
func (c *Controller) SelectedIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position[c.selected]
}

// HasNext reports whether Next would apply.
func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position[c.selected] < len(c.steps)-1
}

// HasPrevious reports whether Previous would apply.
func (c *Controller) HasPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position[c.selected] > 0
}

// IsSelectedCompleted reports whether the selected step is completed.
func (c *Controller) IsSelectedCompleted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.completed[c.selected]
	return ok
}

// IsCompleted reports whether the step with id is completed.
func (c *Controller) IsCompleted(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.completed[id]
	return ok
}

// CompletedIDs returns the completed step ids in ascending order.
func (c *Controller) CompletedIDs() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completedIDs()
}

// IsUnlocked reports whether the step with id may be selected.
func (c *Controller) IsUnlocked(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.position[id]; !ok {
		return false
	}
	return c.unlocked(id)
}

// UnlockedIDs returns the unlocked step ids in navigation order.
func (c *Controller) UnlockedIDs() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unlockedIDs()
}

// TotalWeeks returns the sum of weeks across all steps.
func (c *Controller) TotalWeeks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalWeeks()
}

// ProgressPercent returns the share of completed steps, 0 to 100.
func (c *Controller) ProgressPercent() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressPercent()
}

// PrerequisiteTitles resolves the selected step's prerequisites in declared
// order. Ids that match no step are dropped.
func (c *Controller) PrerequisiteTitles() []curriculum.StepRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prerequisiteTitles()
}

func (c *Controller) unlockedIDs() []int {
	frontier := c.frontier()
	ids := make([]int, 0, len(c.steps))
	for _, s := range c.steps {
		if s.ID <= frontier {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func (c *Controller) totalWeeks() int {
	total := 0
	for _, s := range c.steps {
		total += s.WeeksToFinish
	}
	return total
}

func (c *Controller) progressPercent() float64 {
	if len(c.steps) == 0 {
		return 0
	}
	return 100 * float64(len(c.completed)) / float64(len(c.steps))
}

func (c *Controller) prerequisiteTitles() []curriculum.StepRef {
	sel := c.steps[c.position[c.selected]]
	refs := make([]curriculum.StepRef, 0, len(sel.Prerequisites))
	for _, id := range sel.Prerequisites {
		i, ok := c.position[id]
		if !ok {
			continue
		}
		refs = append(refs, curriculum.StepRef{ID: id, Title: c.steps[i].Title})
	}
	return refs
}

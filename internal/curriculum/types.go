package curriculum

// Step is one unit of a roadmap loaded from YAML.
type Step struct {
	ID            int      `yaml:"id" json:"id"`
	Number        string   `yaml:"number" json:"number"`
	Title         string   `yaml:"title" json:"title"`
	Desc          string   `yaml:"desc" json:"desc"`
	WeeksToFinish int      `yaml:"weeks_to_finish" json:"weeks_to_finish"`
	Category      string   `yaml:"category" json:"category"`
	Resources     []string `yaml:"resources" json:"resources,omitempty"`
	Prerequisites []int    `yaml:"prerequisites" json:"prerequisites,omitempty"`
}

// StepRef is a resolved reference to a step (e.g., a prerequisite).
type StepRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Roadmap is an ordered list of steps. Slice order is the navigation order.
type Roadmap struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// TotalWeeks returns the sum of weeks across all steps.
func (r Roadmap) TotalWeeks() int {
	total := 0
	for _, s := range r.Steps {
		total += s.WeeksToFinish
	}
	return total
}

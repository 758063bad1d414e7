package expertmodel

// HierarchyStep is one entry in the hint hierarchy shown alongside a
// playback run.
type HierarchyStep struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

// Problem is the hint material for one demonstrated problem.
type Problem struct {
	Title string          `json:"title"`
	Steps []HierarchyStep `json:"steps"`
}

// StepHierarchy tracks which hint steps the author has expanded while
// reviewing a problem. Loading a new problem collapses everything.
type StepHierarchy struct {
	problem  *Problem
	expanded map[string]bool
}

// NewStepHierarchy creates an empty hierarchy.
func NewStepHierarchy() *StepHierarchy {
	return &StepHierarchy{expanded: make(map[string]bool)}
}

// LoadProblem replaces the problem and collapses every step.
func (h *StepHierarchy) LoadProblem(problem Problem) {
	h.problem = &problem
	h.expanded = make(map[string]bool)
}

// Problem returns the loaded problem, nil when none.
func (h *StepHierarchy) Problem() *Problem { return h.problem }

// ToggleStep flips a step between expanded and collapsed. Unknown ids are
// ignored.
func (h *StepHierarchy) ToggleStep(stepID string) {
	if h.step(stepID) == nil {
		return
	}
	if h.expanded[stepID] {
		delete(h.expanded, stepID)
		return
	}
	h.expanded[stepID] = true
}

// Expanded reports whether a step is currently expanded.
func (h *StepHierarchy) Expanded(stepID string) bool { return h.expanded[stepID] }

// SetStepTitle edits a step's title in place.
func (h *StepHierarchy) SetStepTitle(stepID, title string) {
	if step := h.step(stepID); step != nil {
		step.Title = title
	}
}

// SetStepHint edits a step's hint in place.
func (h *StepHierarchy) SetStepHint(stepID, hint string) {
	if step := h.step(stepID); step != nil {
		step.Hint = hint
	}
}

func (h *StepHierarchy) step(stepID string) *HierarchyStep {
	if h.problem == nil {
		return nil
	}
	for idx := range h.problem.Steps {
		if h.problem.Steps[idx].ID == stepID {
			return &h.problem.Steps[idx]
		}
	}
	return nil
}

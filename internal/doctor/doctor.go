package doctor

import "time"

// Check is one diagnostic.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Run executes the check. It must not modify anything.
	Run() *CheckResult
}

// Fixer is implemented by checks that can repair what Run found.
type Fixer interface {
	// Fix repairs the issue reported by the last Run.
	Fix() (*FixResult, error)
}

// FixResult describes an applied repair.
type FixResult struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Runner executes checks and aggregates their results.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner creates a runner over checks.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: checks, now: time.Now}
}

// AddCheck registers a check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Report aggregates check results.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Fixes     []*FixResult   `json:"fixes,omitempty"`
	Summary   Summary        `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// Run executes every check. With fix set, checks that found a fixable issue
// are repaired and run again so the report shows the final state.
func (r *Runner) Run(fix bool) (*Report, error) {
	rep := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, c := range r.checks {
		res := c.Run()
		if fixer, ok := c.(Fixer); ok && fix && res.Fixable {
			fr, err := fixer.Fix()
			if err != nil {
				return nil, err
			}
			rep.Fixes = append(rep.Fixes, fr)
			res = c.Run()
		}
		rep.Results = append(rep.Results, res)
		rep.Summary.add(res.Status)
	}
	return rep, nil
}

package constraint

// Handle is an index into a ComplianceArena. Constraints store a Handle
// rather than a pointer to the owning scene's alpha scalar, so the arena can
// move or grow without invalidating a constraint's reference (design note:
// "pointer-shared compliance becomes index/handle-based").
type Handle int

// ComplianceArena owns the compliance (alpha) scalars referenced by
// constraints. It is read by constraints during a step and may only be
// mutated by the orchestrator between steps.
type ComplianceArena struct {
	values []float64
}

// NewComplianceArena creates an empty arena.
func NewComplianceArena() *ComplianceArena {
	return &ComplianceArena{}
}

// Add appends a new compliance value and returns its handle.
func (a *ComplianceArena) Add(alpha float64) Handle {
	a.values = append(a.values, alpha)
	return Handle(len(a.values) - 1)
}

// Get reads the current compliance value for h.
func (a *ComplianceArena) Get(h Handle) float64 {
	return a.values[h]
}

// Set updates the compliance value for h. Must only be called between steps.
func (a *ComplianceArena) Set(h Handle, alpha float64) {
	a.values[h] = alpha
}

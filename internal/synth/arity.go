package synth

import "fmt"

// Arity bounds for batch-generated step families. Twenty-six is the last
// arity with a single-letter type parameter name.
const (
	MinArity = 2
	MaxArity = 26
)

// StepFamily describes a batch of N-ary path-step shapes to generate, one
// per arity in [From, To].
type StepFamily struct {
	From int
	To   int
}

// NewStepFamily validates the requested arity range against the family
// bounds. One-ary steps are degenerate and rejected.
func NewStepFamily(from, to int) (StepFamily, error) {
	if from < MinArity || from > MaxArity {
		return StepFamily{}, fmt.Errorf("step family lower bound %d outside [%d, %d]", from, MinArity, MaxArity)
	}
	if to < MinArity || to > MaxArity {
		return StepFamily{}, fmt.Errorf("step family upper bound %d outside [%d, %d]", to, MinArity, MaxArity)
	}
	if to < from {
		return StepFamily{}, fmt.Errorf("step family upper bound %d below lower bound %d", to, from)
	}
	return StepFamily{From: from, To: to}, nil
}

// Arities returns every arity in the family, ascending.
func (f StepFamily) Arities() []int {
	out := make([]int, 0, f.To-f.From+1)
	for n := f.From; n <= f.To; n++ {
		out = append(out, n)
	}
	return out
}

// TypeParams returns the single-letter type parameter names for one arity,
// "A" through "Z".
func TypeParams(arity int) []string {
	params := make([]string, arity)
	for i := 0; i < arity; i++ {
		params[i] = string(rune('A' + i))
	}
	return params
}

package purego

import (
	"github.com/fluidml/fluidml/backends"
)

// WhileLoop evaluates cond(loopVars) and, while it holds, replaces loopVars
// with body(loopVars). A non-negative maxIterations caps the number of body
// evaluations regardless of cond.
func (b *Backend) WhileLoop(cond backends.Condition, body backends.Body, loopVars []backends.Tensor, maxIterations int) []backends.Tensor {
	vars := make([]backends.Tensor, len(loopVars))
	copy(vars, loopVars)
	for i := 0; maxIterations < 0 || i < maxIterations; i++ {
		if !cond(vars) {
			break
		}
		vars = body(vars)
	}
	return vars
}

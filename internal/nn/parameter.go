package nn

import (
	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/backprop-go/backprop/internal/tensor"
)

// TensorMap maps parameter names (W1, b1, W2, ...) to tensors.
//
// Iteration follows insertion order, so optimizer updates and gradient
// reports always visit keys in the same sequence. The same type serves as
// the parameter set and as the gradient set.
//
// Example:
//
//	params := net.Params()
//	params.Each(func(name string, w *tensor.Dense) {
//	    fmt.Println(name, w.Shape())
//	})
type TensorMap struct {
	m *orderedmap.OrderedMap[string, *tensor.Dense]
}

// NewTensorMap creates an empty TensorMap.
func NewTensorMap() TensorMap {
	return TensorMap{m: orderedmap.New[string, *tensor.Dense]()}
}

// Set stores t under name. A new name is appended at the end; an existing
// name keeps its position. A zero TensorMap allocates its storage on the
// first Set.
func (tm *TensorMap) Set(name string, t *tensor.Dense) {
	if tm.m == nil {
		tm.m = orderedmap.New[string, *tensor.Dense]()
	}
	tm.m.Set(name, t)
}

// Get returns the tensor stored under name.
func (tm TensorMap) Get(name string) (*tensor.Dense, bool) {
	if tm.m == nil {
		return nil, false
	}
	return tm.m.Get(name)
}

// Len returns the number of entries.
func (tm TensorMap) Len() int {
	if tm.m == nil {
		return 0
	}
	return tm.m.Len()
}

// Keys returns the names in insertion order.
func (tm TensorMap) Keys() []string {
	keys := make([]string, 0, tm.Len())
	tm.Each(func(name string, _ *tensor.Dense) {
		keys = append(keys, name)
	})
	return keys
}

// Each calls fn for every entry in insertion order.
func (tm TensorMap) Each(fn func(name string, t *tensor.Dense)) {
	if tm.m == nil {
		return
	}
	for pair := tm.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// CheckCompatible verifies that grads holds exactly the keys of params and
// that every gradient has the shape of its parameter.
func CheckCompatible(params, grads TensorMap) error {
	if params.Len() != grads.Len() {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%d parameters but %d gradients", params.Len(), grads.Len())
	}
	var err error
	params.Each(func(name string, p *tensor.Dense) {
		if err != nil {
			return
		}
		g, ok := grads.Get(name)
		if !ok {
			err = errors.Wrapf(tensor.ErrShapeMismatch, "no gradient for parameter %q", name)
			return
		}
		if !g.SameShape(p) {
			err = errors.Wrapf(tensor.ErrShapeMismatch, "gradient %q has shape %v, parameter has %v",
				name, g.Shape(), p.Shape())
		}
	})
	return err
}

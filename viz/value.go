package viz

import "fmt"

// Value is one node of a sample's nested numeric payload. The set of
// implementations is closed: Scalar, Sequence, Mapping, Tensor, Opaque.
// A nil Value means "absent" and is accepted everywhere a Value is.
type Value interface {
	value()
}

// Scalar is a single numeric leaf.
type Scalar float64

// Sequence is an ordered list of values, addressed by 0-based position.
type Sequence []Value

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key string
	Val Value
}

// Mapping is an ordered key/value collection. Entries keep the order they
// were built in; traversal order is part of the path-stability contract, so
// a native map (randomized iteration) cannot back it.
type Mapping []Entry

// Tensor is a dense n-dimensional numeric array in row-major layout.
// len(Data) must equal the product of Shape; a zero-length Shape is a
// 0-dimensional tensor holding one element.
type Tensor struct {
	Shape []int
	Data  []float64
}

// Opaque wraps a payload the core does not interpret (tactiles, audio).
// It flattens to nothing and never fails a sample.
type Opaque struct {
	Raw any
}

func (Scalar) value()   {}
func (Sequence) value() {}
func (Mapping) value()  {}
func (*Tensor) value()  {}
func (Opaque) value()   {}

// Get returns the value stored under key and whether it is present.
func (m Mapping) Get(key string) (Value, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Val, true
		}
	}
	return nil, false
}

// Without returns a copy of the mapping with the given key removed,
// preserving the order of the remaining entries.
func (m Mapping) Without(key string) Mapping {
	out := make(Mapping, 0, len(m))
	for _, e := range m {
		if e.Key != key {
			out = append(out, e)
		}
	}
	return out
}

// Size returns the total element count of the tensor.
func (t *Tensor) Size() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// Nested converts the tensor to the equivalent nested Sequence/Scalar form.
// A 0-dimensional tensor becomes a Scalar.
func (t *Tensor) Nested() Value {
	return nestedAt(t.Shape, t.Data)
}

func nestedAt(shape []int, data []float64) Value {
	if len(shape) == 0 {
		return Scalar(data[0])
	}
	dim := shape[0]
	seq := make(Sequence, dim)
	if dim == 0 {
		return seq
	}
	stride := len(data) / dim
	for i := 0; i < dim; i++ {
		seq[i] = nestedAt(shape[1:], data[i*stride:(i+1)*stride])
	}
	return seq
}

// DenseTensor converts a nested Sequence (or a Scalar, or an existing
// Tensor) into dense tensor form. It fails on ragged nesting, on mixed
// element kinds, and on anything other than numeric leaves.
func DenseTensor(v Value) (*Tensor, error) {
	switch val := v.(type) {
	case *Tensor:
		return val, nil
	case Scalar:
		return &Tensor{Shape: []int{}, Data: []float64{float64(val)}}, nil
	case Sequence:
		shape, err := denseShape(val)
		if err != nil {
			return nil, err
		}
		t := &Tensor{Shape: shape, Data: make([]float64, 0, product(shape))}
		if err := appendDense(t, val, shape); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a dense tensor", v)
	}
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// denseShape infers the shape of a uniformly nested sequence from its first
// elements; appendDense then verifies every sibling against it.
func denseShape(seq Sequence) ([]int, error) {
	shape := []int{len(seq)}
	if len(seq) == 0 {
		return shape, nil
	}
	switch first := seq[0].(type) {
	case Scalar:
		return shape, nil
	case Sequence:
		inner, err := denseShape(first)
		if err != nil {
			return nil, err
		}
		return append(shape, inner...), nil
	default:
		return nil, fmt.Errorf("non-numeric element %T in nested sequence", seq[0])
	}
}

func appendDense(t *Tensor, v Value, shape []int) error {
	if len(shape) == 0 {
		s, ok := v.(Scalar)
		if !ok {
			return fmt.Errorf("expected scalar leaf, got %T", v)
		}
		t.Data = append(t.Data, float64(s))
		return nil
	}
	seq, ok := v.(Sequence)
	if !ok {
		return fmt.Errorf("ragged nesting: expected sequence of length %d, got %T", shape[0], v)
	}
	if len(seq) != shape[0] {
		return fmt.Errorf("ragged nesting: expected length %d, got %d", shape[0], len(seq))
	}
	for _, elem := range seq {
		if err := appendDense(t, elem, shape[1:]); err != nil {
			return err
		}
	}
	return nil
}

package viz

import (
	"fmt"
	"iter"
)

// Flatten walks an arbitrarily nested value and yields one (path, scalar)
// pair per numeric leaf. Paths are built by joining keys and 0-based
// indices onto base with "/". For a fixed input the traversal order is
// deterministic: sequences in positional order, mappings in entry order.
//
// The returned sequence is restartable — each range re-runs the traversal.
// Non-finite values are NOT filtered here; callers decide what reaches the
// viewer. Unsupported kinds (Opaque, nil) yield nothing.
func Flatten(base string, v Value) iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		flattenInto(base, v, yield)
	}
}

func flattenInto(base string, v Value, yield func(string, float64) bool) bool {
	switch val := v.(type) {
	case nil:
		return true
	case Scalar:
		return yield(base, float64(val))
	case Sequence:
		for i, elem := range val {
			if !flattenInto(fmt.Sprintf("%s/%d", base, i), elem, yield) {
				return false
			}
		}
		return true
	case Mapping:
		for _, e := range val {
			if !flattenInto(base+"/"+e.Key, e.Val, yield) {
				return false
			}
		}
		return true
	case *Tensor:
		if val == nil {
			return true
		}
		return flattenInto(base, val.Nested(), yield)
	default:
		return true
	}
}

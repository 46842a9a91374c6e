package dfkernel

// Key is a phantom-tagged dense index into an arena. Tag distinguishes keys
// minted by different arenas (handoffs, subgraphs, states, loop blocks) so
// that, for example, a HandoffKey cannot be passed where a SubgraphKey is
// expected, even though both are backed by the same underlying index type.
type Key[Tag any] struct {
	index uint32
}

// valid reports whether the key is not the invalidKey sentinel. The zero Key
// is valid: it addresses slot 0.
func (k Key[Tag]) valid() bool {
	return k.index != invalidIndex
}

const invalidIndex = ^uint32(0)

func invalidKey[Tag any]() Key[Tag] {
	return Key[Tag]{index: invalidIndex}
}

// arena is a dense, append-only, typed store of values of type V, addressed
// by Key[Tag]. Values are never removed: a graph's handoffs, subgraphs,
// states, and loop blocks all live for the lifetime of the graph.
type arena[Tag any, V any] struct {
	values []V
}

func (a *arena[Tag, V]) insert(v V) Key[Tag] {
	a.values = append(a.values, v)
	return Key[Tag]{index: uint32(len(a.values) - 1)}
}

func (a *arena[Tag, V]) get(k Key[Tag]) *V {
	return &a.values[k.index]
}

func (a *arena[Tag, V]) len() int {
	return len(a.values)
}

// iter yields keys in insertion order.
func (a *arena[Tag, V]) iter(yield func(Key[Tag], *V) bool) {
	for i := range a.values {
		if !yield(Key[Tag]{index: uint32(i)}, &a.values[i]) {
			return
		}
	}
}

// index exposes the raw slot index of a key. HandoffKey[T] and StateKey[T]
// are Key[handoffTag[T]] / Key[stateTag[T]] respectively: distinct static
// types per T, but an identical {index uint32} layout, which is what lets
// Graph and StateRegistry keep one shared heterogeneous slice (of boxed
// interfaces) indexed directly by this field regardless of T.
func index[Tag any](k Key[Tag]) uint32 {
	return k.index
}

func keyFromIndex[Tag any](i int) Key[Tag] {
	return Key[Tag]{index: uint32(i)}
}

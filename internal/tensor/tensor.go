// Package tensor provides the numeric containers consumed by the layer
// packages: a common elementwise contract over dense and sparse storage.
// It is intentionally minimal — shape introspection, elementwise access
// and cloning — not a linear-algebra library.
package tensor

// Float is the set of element types a tensor may hold.
type Float interface {
	~float32 | ~float64
}

// Tensor is a shaped numeric container addressed by linear (row-major)
// index. Implementations: Dense (vectors, matrices, higher-rank volumes)
// and Sparse (map-backed, zero-default).
type Tensor[T Float] interface {
	// Shape returns a copy of the dimension sizes.
	Shape() []int

	// Len returns the number of logical elements (product of the shape).
	Len() int

	// At returns the element at linear index i.
	At(i int) T

	// Set stores v at linear index i.
	Set(i int, v T)

	// Clone returns an independent copy with the same storage kind.
	Clone() Tensor[T]
}

// SameShape reports whether two tensors have identical dimensions.
func SameShape[T Float](a, b Tensor[T]) bool {
	as, bs := a.Shape(), b.Shape()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Dense is a row-major contiguous container. The zero value is unusable;
// create with NewDense or FromSlice.
type Dense[T Float] struct {
	data  []T
	shape []int
}

// NewDense creates a zero-filled dense tensor with the given shape.
func NewDense[T Float](shape ...int) *Dense[T] {
	n := 1
	for _, d := range shape {
		n *= d
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Dense[T]{
		data:  make([]T, n),
		shape: s,
	}
}

// FromSlice creates a dense tensor backed by a copy of data. The product
// of shape must equal len(data).
func FromSlice[T Float](data []T, shape ...int) *Dense[T] {
	t := NewDense[T](shape...)
	if len(t.data) != len(data) {
		panic("tensor: shape does not match data length")
	}
	copy(t.data, data)
	return t
}

// Shape returns a copy of the dimension sizes.
func (t *Dense[T]) Shape() []int {
	s := make([]int, len(t.shape))
	copy(s, t.shape)
	return s
}

// Len returns the number of elements.
func (t *Dense[T]) Len() int {
	return len(t.data)
}

// At returns the element at linear index i.
func (t *Dense[T]) At(i int) T {
	return t.data[i]
}

// Set stores v at linear index i.
func (t *Dense[T]) Set(i int, v T) {
	t.data[i] = v
}

// Clone returns an independent copy.
func (t *Dense[T]) Clone() Tensor[T] {
	c := NewDense[T](t.shape...)
	copy(c.data, t.data)
	return c
}

// Data returns the backing slice. Mutating it mutates the tensor.
func (t *Dense[T]) Data() []T {
	return t.data
}

// Index converts multi-dimensional coordinates to a linear index.
func (t *Dense[T]) Index(coords ...int) int {
	if len(coords) != len(t.shape) {
		panic("tensor: coordinate rank does not match shape")
	}
	idx := 0
	for d, c := range coords {
		idx = idx*t.shape[d] + c
	}
	return idx
}

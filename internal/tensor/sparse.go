package tensor

// Sparse is a map-backed container: elements never Set read as zero.
// Suited to inputs where most activations are zero; note that writes
// densify it one element at a time.
type Sparse[T Float] struct {
	elems map[int]T
	shape []int
	n     int
}

// NewSparse creates an empty sparse tensor with the given shape.
func NewSparse[T Float](shape ...int) *Sparse[T] {
	n := 1
	for _, d := range shape {
		n *= d
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Sparse[T]{
		elems: make(map[int]T),
		shape: s,
		n:     n,
	}
}

// Shape returns a copy of the dimension sizes.
func (t *Sparse[T]) Shape() []int {
	s := make([]int, len(t.shape))
	copy(s, t.shape)
	return s
}

// Len returns the number of logical elements, stored or not.
func (t *Sparse[T]) Len() int {
	return t.n
}

// At returns the element at linear index i, zero if never set.
func (t *Sparse[T]) At(i int) T {
	if i < 0 || i >= t.n {
		panic("tensor: index out of range")
	}
	return t.elems[i]
}

// Set stores v at linear index i. Storing zero removes the entry.
func (t *Sparse[T]) Set(i int, v T) {
	if i < 0 || i >= t.n {
		panic("tensor: index out of range")
	}
	if v == 0 {
		delete(t.elems, i)
		return
	}
	t.elems[i] = v
}

// NNZ returns the number of explicitly stored elements.
func (t *Sparse[T]) NNZ() int {
	return len(t.elems)
}

// Clone returns an independent copy.
func (t *Sparse[T]) Clone() Tensor[T] {
	c := NewSparse[T](t.shape...)
	for i, v := range t.elems {
		c.elems[i] = v
	}
	return c
}

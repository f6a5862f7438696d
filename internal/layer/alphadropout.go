// Package layer provides the alpha-dropout regularization layer.
package layer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/selunet/selunet/internal/activations"
	"github.com/selunet/selunet/internal/tensor"
)

// DefaultRatio is the default probability of replacing an element.
const DefaultRatio = 0.5

// DefaultAlphaDash is the default substitution value: the negative
// saturation value of the SELU activation.
const DefaultAlphaDash = -activations.Alpha * activations.Lambda

const defaultSeed = 42

var (
	// ErrInvalidRatio reports a dropout ratio outside [0, 1). A ratio of 1
	// would make the affine scale non-finite.
	ErrInvalidRatio = errors.New("layer: dropout ratio must be in [0, 1)")

	// ErrNoMask reports a training-mode Backward with no mask from a
	// preceding Forward on the same instance.
	ErrNoMask = errors.New("layer: backward requires a preceding training-mode forward")

	// ErrShapeMismatch reports a gradient whose shape differs from the
	// stored mask.
	ErrShapeMismatch = errors.New("layer: gradient shape does not match mask")
)

// Source provides independent uniform draws in [0, 1) for Bernoulli
// sampling. *math/rand.Rand satisfies it; the owning framework may
// inject its own via SetSource.
type Source interface {
	Float64() float64
}

// Encoder writes values to an archive. Satisfied by *gob.Encoder and
// *json.Encoder.
type Encoder interface {
	Encode(v any) error
}

// Decoder reads values from an archive. Satisfied by *gob.Decoder and
// *json.Decoder.
type Decoder interface {
	Decode(v any) error
}

// AlphaDropout randomly replaces input elements with alphaDash with
// probability ratio, then applies an affine transform a*x + b chosen so
// the output keeps the input's mean and variance. It pairs with the SELU
// activation, whose negative saturation value is the default alphaDash;
// plain zero-substitution dropout would break SELU's self-normalizing
// property.
//
// In deterministic (inference) mode the layer is an identity pass-through.
//
// An instance is not safe for concurrent use: Forward writes the mask and
// scratch buffers that Backward reads. Callers serialize forward/backward
// pairs per instance; distinct instances share nothing and may run in
// parallel.
type AlphaDropout[T tensor.Float] struct {
	// Probability of replacing an element with alphaDash
	ratio float64

	// Substitution value, by default the SELU negative saturation
	alphaDash float64

	// Affine transform constants, derived from ratio and alphaDash
	a float64
	b float64

	// Inference mode: masking and affine transform disabled
	deterministic bool

	// Scratch from the most recent forward/backward pair
	mask   tensor.Tensor[T]
	input  tensor.Tensor[T]
	output tensor.Tensor[T]
	delta  tensor.Tensor[T]

	rng Source
}

// NewAlphaDropout creates an alpha-dropout layer. ratio is the
// probability of replacing an element with alphaDash; it must lie in
// [0, 1). The affine constants are derived immediately so the layer is
// usable without further configuration.
func NewAlphaDropout[T tensor.Float](ratio, alphaDash float64) (*AlphaDropout[T], error) {
	if ratio < 0 || ratio >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRatio, ratio)
	}
	d := &AlphaDropout[T]{
		ratio:     ratio,
		alphaDash: alphaDash,
		rng:       rand.New(rand.NewSource(defaultSeed)),
	}
	d.recompute()
	return d, nil
}

// recompute derives the affine constants from ratio and alphaDash:
//
//	a = ((1-ratio) * (1 + ratio*alphaDash^2))^-0.5
//	b = -a * alphaDash * ratio
//
// These keep the post-transform mean and variance equal to the
// pre-dropout values under Bernoulli replacement.
func (d *AlphaDropout[T]) recompute() {
	d.a = math.Pow((1-d.ratio)*(1+d.ratio*d.alphaDash*d.alphaDash), -0.5)
	d.b = -d.a * d.alphaDash * d.ratio
}

// Forward applies alpha-dropout to x and returns the output, which has
// the same shape and storage kind as x. In deterministic mode the output
// is an element-for-element copy of x and the mask is untouched. In
// training mode each element is independently kept with probability
// 1-ratio or replaced by alphaDash, then transformed to a*v + b; the
// freshly drawn mask (1 kept, 0 replaced) is stored for the matching
// Backward call.
func (d *AlphaDropout[T]) Forward(x tensor.Tensor[T]) tensor.Tensor[T] {
	out := x.Clone()
	d.input = x.Clone()

	if d.deterministic {
		d.output = out
		return out
	}

	mask := x.Clone()
	dropped := T(d.a*d.alphaDash + d.b)
	n := x.Len()
	for i := 0; i < n; i++ {
		if d.rng.Float64() < d.ratio {
			mask.Set(i, 0)
			out.Set(i, dropped)
		} else {
			mask.Set(i, 1)
			out.Set(i, T(d.a*float64(x.At(i))+d.b))
		}
	}

	d.mask = mask
	d.output = out
	return out
}

// Backward routes the upstream gradient gy through the mask left by the
// most recent Forward: g = a * mask .* gy. Replaced elements contribute
// zero gradient since the substitution value is a constant. In
// deterministic mode the gradient passes through unchanged, matching the
// identity forward pass.
func (d *AlphaDropout[T]) Backward(gy tensor.Tensor[T]) (tensor.Tensor[T], error) {
	if d.deterministic {
		g := gy.Clone()
		d.delta = g
		return g, nil
	}
	if d.mask == nil {
		return nil, ErrNoMask
	}
	if !tensor.SameShape(gy, d.mask) {
		return nil, fmt.Errorf("%w: gradient %v, mask %v", ErrShapeMismatch, gy.Shape(), d.mask.Shape())
	}

	g := gy.Clone()
	a := T(d.a)
	n := gy.Len()
	for i := 0; i < n; i++ {
		g.Set(i, a*d.mask.At(i)*gy.At(i))
	}
	d.delta = g
	return g, nil
}

// Ratio returns the probability of replacing an element with alphaDash.
func (d *AlphaDropout[T]) Ratio() float64 {
	return d.ratio
}

// SetRatio updates the ratio and rederives the affine constants. As 'a'
// and 'b' depend on the ratio, they are recomputed here; they are never
// independently settable.
func (d *AlphaDropout[T]) SetRatio(r float64) error {
	if r < 0 || r >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRatio, r)
	}
	d.ratio = r
	d.recompute()
	return nil
}

// A returns the affine scale applied after substitution.
func (d *AlphaDropout[T]) A() float64 {
	return d.a
}

// B returns the affine shift applied after substitution.
func (d *AlphaDropout[T]) B() float64 {
	return d.b
}

// AlphaDash returns the substitution value.
func (d *AlphaDropout[T]) AlphaDash() float64 {
	return d.alphaDash
}

// Deterministic reports whether the layer is in inference mode.
func (d *AlphaDropout[T]) Deterministic() bool {
	return d.deterministic
}

// SetDeterministic switches between training (false) and inference
// (true) mode. The owning framework toggles this, not the layer.
func (d *AlphaDropout[T]) SetDeterministic(flag bool) {
	d.deterministic = flag
}

// Mask returns the mask from the most recent training-mode Forward, or
// nil if none exists. Entries are 1 for kept elements, 0 for replaced.
func (d *AlphaDropout[T]) Mask() tensor.Tensor[T] {
	return d.mask
}

// SetMask replaces the stored mask. Intended for the owning framework's
// state management; Forward overwrites it on the next training call.
func (d *AlphaDropout[T]) SetMask(m tensor.Tensor[T]) {
	d.mask = m
}

// InputParameter returns the input cached by the most recent Forward.
func (d *AlphaDropout[T]) InputParameter() tensor.Tensor[T] {
	return d.input
}

// OutputParameter returns the output of the most recent Forward.
func (d *AlphaDropout[T]) OutputParameter() tensor.Tensor[T] {
	return d.output
}

// Delta returns the gradient produced by the most recent Backward.
func (d *AlphaDropout[T]) Delta() tensor.Tensor[T] {
	return d.delta
}

// SetDelta replaces the stored gradient scratch.
func (d *AlphaDropout[T]) SetDelta(g tensor.Tensor[T]) {
	d.delta = g
}

// SetSource injects the random source used for Bernoulli sampling.
func (d *AlphaDropout[T]) SetSource(s Source) {
	d.rng = s
}

// Reset reseeds the default random source and clears the scratch
// buffers, so the next forward pass reproduces the mask sequence of a
// freshly constructed layer.
func (d *AlphaDropout[T]) Reset() {
	d.rng = rand.New(rand.NewSource(defaultSeed))
	d.mask = nil
	d.input = nil
	d.output = nil
	d.delta = nil
}

// Package selunet provides alpha-dropout regularization for
// self-normalizing (SELU) networks: a dropout variant that replaces
// activations with the SELU saturation value and rescales so the output
// keeps the input's mean and variance.
package selunet

import (
	"github.com/selunet/selunet/internal/activations"
	"github.com/selunet/selunet/internal/layer"
	"github.com/selunet/selunet/internal/tensor"
)

// Re-export common types for easier access
type (
	Activation = activations.Activation
	Source     = layer.Source
	Encoder    = layer.Encoder
	Decoder    = layer.Decoder

	// Float64 instantiations of the generic containers and layer
	Tensor       = tensor.Tensor[float64]
	Dense        = tensor.Dense[float64]
	Sparse       = tensor.Sparse[float64]
	AlphaDropout = layer.AlphaDropout[float64]
)

// SELU constants and layer defaults
const (
	Alpha            = activations.Alpha
	Lambda           = activations.Lambda
	DefaultRatio     = layer.DefaultRatio
	DefaultAlphaDash = layer.DefaultAlphaDash
)

// Errors
var (
	ErrInvalidRatio  = layer.ErrInvalidRatio
	ErrNoMask        = layer.ErrNoMask
	ErrShapeMismatch = layer.ErrShapeMismatch
	ErrCorruptState  = layer.ErrCorruptState
)

// Activations
var (
	SELU   = activations.SELU{}
	Linear = activations.Linear{}
)

// NewAlphaDropout creates a float64 alpha-dropout layer.
func NewAlphaDropout(ratio, alphaDash float64) (*AlphaDropout, error) {
	return layer.NewAlphaDropout[float64](ratio, alphaDash)
}

// Tensors
func NewTensor(shape ...int) *Dense {
	return tensor.NewDense[float64](shape...)
}

func FromSlice(data []float64, shape ...int) *Dense {
	return tensor.FromSlice(data, shape...)
}

func NewSparse(shape ...int) *Sparse {
	return tensor.NewSparse[float64](shape...)
}

// Package activations provides activation functions for self-normalizing
// networks.
package activations

import "math"

// SELU constants from Klambauer et al., "Self-Normalizing Neural
// Networks" (2017). Chosen so that zero-mean, unit-variance inputs keep
// those moments through the activation.
const (
	// Alpha is the SELU alpha for normalized inputs.
	Alpha = 1.6732632423543772848170429916717

	// Lambda is the SELU scale for normalized inputs.
	Lambda = 1.0507009873554804934193349852946
)

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x)
	Derivative(x float64) float64
}

// SELU (Scaled Exponential Linear Unit) activation function.
// Its negative saturation value is -Alpha*Lambda, the substitution value
// used by the alpha-dropout layer.
type SELU struct{}

// Activate computes lambda*x if x > 0, else lambda*alpha*(exp(x)-1)
func (s SELU) Activate(x float64) float64 {
	if x > 0 {
		return Lambda * x
	}
	return Lambda * Alpha * (math.Exp(x) - 1)
}

// Derivative returns lambda if x > 0, else lambda*alpha*exp(x)
func (s SELU) Derivative(x float64) float64 {
	if x > 0 {
		return Lambda
	}
	return Lambda * Alpha * math.Exp(x)
}

// Linear (identity) activation function.
type Linear struct{}

// Activate returns x unchanged
func (l Linear) Activate(x float64) float64 {
	return x
}

// Derivative returns 1
func (l Linear) Derivative(x float64) float64 {
	return 1
}

package layer

import (
	"errors"
	"fmt"
	"math"
)

// ErrCorruptState reports an archive whose decoded configuration is
// internally inconsistent or out of domain.
var ErrCorruptState = errors.New("layer: corrupt alpha-dropout state")

// affineTolerance bounds the disagreement allowed between stored and
// recomputed affine constants on restore.
const affineTolerance = 1e-9

// alphaDropoutState is the persisted configuration subset of the layer.
// Scratch buffers (mask, input, output, delta) are call-scoped and never
// persisted.
type alphaDropoutState struct {
	Ratio         float64
	AlphaDash     float64
	A             float64
	B             float64
	Deterministic bool
}

// Serialize writes the layer configuration to the archive.
func (d *AlphaDropout[T]) Serialize(enc Encoder) error {
	st := alphaDropoutState{
		Ratio:         d.ratio,
		AlphaDash:     d.alphaDash,
		A:             d.a,
		B:             d.b,
		Deterministic: d.deterministic,
	}
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("layer: serialize alpha-dropout: %w", err)
	}
	return nil
}

// Deserialize restores the layer configuration from the archive. The
// decoded state is validated before any field is touched: on error the
// layer is left unmodified. Scratch buffers are cleared on success; they
// are undefined until the next Forward.
func (d *AlphaDropout[T]) Deserialize(dec Decoder) error {
	var st alphaDropoutState
	if err := dec.Decode(&st); err != nil {
		return fmt.Errorf("layer: deserialize alpha-dropout: %w", err)
	}
	if err := st.validate(); err != nil {
		return err
	}

	d.ratio = st.Ratio
	d.alphaDash = st.AlphaDash
	d.a = st.A
	d.b = st.B
	d.deterministic = st.Deterministic
	d.mask = nil
	d.input = nil
	d.output = nil
	d.delta = nil
	return nil
}

// validate checks domain constraints and that the stored affine
// constants agree with the values rederived from ratio and alphaDash.
func (st alphaDropoutState) validate() error {
	if st.Ratio < 0 || st.Ratio >= 1 {
		return fmt.Errorf("%w: ratio %v outside [0, 1)", ErrCorruptState, st.Ratio)
	}
	for _, v := range []float64{st.AlphaDash, st.A, st.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite constant", ErrCorruptState)
		}
	}
	a := math.Pow((1-st.Ratio)*(1+st.Ratio*st.AlphaDash*st.AlphaDash), -0.5)
	b := -a * st.AlphaDash * st.Ratio
	if math.Abs(a-st.A) > affineTolerance || math.Abs(b-st.B) > affineTolerance {
		return fmt.Errorf("%w: affine constants disagree with ratio %v and alphaDash %v",
			ErrCorruptState, st.Ratio, st.AlphaDash)
	}
	return nil
}

package curve

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Interpolation modes accepted in configuration
const (
	ModeLinear  = "linear"
	ModeSmooth  = "smooth"
	ModeHermite = "hermite"
)

var (
	ErrEmpty       = errors.New("curve has no keys")
	ErrInvalidKey  = errors.New("invalid curve key")
	ErrUnknownMode = errors.New("unknown curve mode")
)

// document is the YAML shape of a curve:
//
//	mode: linear
//	keys: [[0, 2.0], [0.6, 0.3]]
//
// Hermite keys carry four values: time, value, in tangent, out tangent
// A bare sequence of keys is accepted as linear shorthand
type document struct {
	Mode string      `yaml:"mode,omitempty"`
	Keys [][]float64 `yaml:"keys"`
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Curve) UnmarshalYAML(value *yaml.Node) error {
	var doc document
	if value.Kind == yaml.SequenceNode {
		if err := value.Decode(&doc.Keys); err != nil {
			return fmt.Errorf("curve keys: %w", err)
		}
	} else if err := value.Decode(&doc); err != nil {
		return fmt.Errorf("curve: %w", err)
	}

	built, err := doc.build()
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = *built
	return nil
}

// MarshalYAML implements yaml.Marshaler, always in hermite form so tangents round-trip
func (c *Curve) MarshalYAML() (any, error) {
	doc := document{Mode: ModeHermite, Keys: make([][]float64, len(c.keys))}
	for i, k := range c.keys {
		doc.Keys[i] = []float64{k.Time, k.Value, k.InTangent, k.OutTangent}
	}
	return doc, nil
}

func (d document) build() (*Curve, error) {
	if len(d.Keys) == 0 {
		return nil, ErrEmpty
	}

	switch d.Mode {
	case "", ModeLinear, ModeSmooth:
		points := make([][2]float64, len(d.Keys))
		for i, k := range d.Keys {
			if len(k) != 2 {
				return nil, fmt.Errorf("%w: key %d has %d values, want 2", ErrInvalidKey, i, len(k))
			}
			points[i] = [2]float64{k[0], k[1]}
		}
		if d.Mode == ModeSmooth {
			return Smooth(points...), nil
		}
		return Linear(points...), nil

	case ModeHermite:
		keys := make([]Key, len(d.Keys))
		for i, k := range d.Keys {
			if len(k) != 4 {
				return nil, fmt.Errorf("%w: key %d has %d values, want 4", ErrInvalidKey, i, len(k))
			}
			keys[i] = Key{Time: k[0], Value: k[1], InTangent: k[2], OutTangent: k[3]}
		}
		return New(keys...), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, d.Mode)
	}
}

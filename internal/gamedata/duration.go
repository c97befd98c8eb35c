package gamedata

import (
	"time"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"gopkg.in/yaml.v3"
)

// Duration reads "90s" style strings. A bare number is taken as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return gameerr.Validationf("line %d: duration must be a scalar", node.Line)
	}

	if parsed, err := time.ParseDuration(node.Value); err == nil {
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := node.Decode(&seconds); err != nil {
		return gameerr.Validationf("line %d: invalid duration %q", node.Line, node.Value)
	}
	*d = Duration(seconds * float64(time.Second))
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

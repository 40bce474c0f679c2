package config

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/goap/domain/world"
)

// Heuristic names accepted in PlannerSettings.
const (
	HeuristicRelaxed      = "relaxed"
	HeuristicGoalDistance = "goal_distance"
	HeuristicZero         = "zero"
)

// Scalar converts a decoded YAML or JSON scalar to a world value. JSON
// numbers without a fraction or exponent become integers.
func Scalar(v any) (world.Value, error) {
	n, ok := v.(json.Number)
	if !ok {
		return world.FromAny(v)
	}
	if i, err := n.Int64(); err == nil {
		return world.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return world.Value{}, fmt.Errorf("%w: %s", world.ErrUnsupportedValue, n)
	}
	return world.Float(f), nil
}

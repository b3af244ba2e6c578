package formula

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Grounded on MathFunctions.go: max/min/sum/avg registered as expr
// builtins so formula text can call them directly, e.g. "=sum(A1, A2, B3)".

func calculateMax(args ...any) (any, error) {
	max, err := toFloat(args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range args[1:] {
		v, err := toFloat(arg)
		if err != nil {
			return nil, err
		}
		if v > max {
			max = v
		}
	}
	return max, nil
}

func calculateMin(args ...any) (any, error) {
	min, err := toFloat(args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range args[1:] {
		v, err := toFloat(arg)
		if err != nil {
			return nil, err
		}
		if v < min {
			min = v
		}
	}
	return min, nil
}

func calculateSum(args ...any) (any, error) {
	var sum float64
	for _, arg := range args {
		v, err := toFloat(arg)
		if err != nil {
			return nil, err
		}
		sum += v
	}
	return sum, nil
}

func calculateAvg(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("avg: no arguments")
	}
	sum, err := calculateSum(args...)
	if err != nil {
		return nil, err
	}
	return sum.(float64) / float64(len(args)), nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

var mathFunctions = []expr.Option{
	expr.Function("max", calculateMax),
	expr.Function("min", calculateMin),
	expr.Function("sum", calculateSum),
	expr.Function("avg", calculateAvg),
}

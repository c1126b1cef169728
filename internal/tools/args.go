package tools

import "retailcore/pkg/domain"

// Argument extraction helpers. Arguments arrive as decoded JSON, so numbers
// are float64 and objects are map[string]any; missing or mistyped values
// degrade to zero values the same way the original interface treated absent
// optional parameters.

func argString(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func argNumber(args map[string]any, name string) float64 {
	rec := domain.Record(args)
	n, _ := rec.Number(name)
	return n
}

func argInt(args map[string]any, name string) int {
	return int(argNumber(args, name))
}

func argObject(args map[string]any, name string) map[string]any {
	switch obj := args[name].(type) {
	case map[string]any:
		return obj
	case domain.Record:
		return obj
	default:
		return nil
	}
}

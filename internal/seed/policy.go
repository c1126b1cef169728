package seed

import (
	_ "embed"
	"fmt"
	"os"
)

// DefaultPolicy is the baked-in policy document handed to the outer
// conversational harness. The core never parses it; only the authorization
// gate's role table encodes enforceable policy.
//
//go:embed policy.md
var DefaultPolicy string

// LoadPolicy returns the policy text at path, or the embedded default when
// path is empty.
func LoadPolicy(path string) (string, error) {
	if path == "" {
		return DefaultPolicy, nil
	}
	payload, err := os.ReadFile(path) // #nosec G304 -- operator-supplied policy path
	if err != nil {
		return "", fmt.Errorf("read policy: %w", err)
	}
	return string(payload), nil
}

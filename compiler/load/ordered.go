package load

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pair is one key/value of an Ordered mapping.
type Pair[V any] struct {
	Key   string
	Value V
}

// Ordered is a mapping that keeps the declaration order of its keys.
// Generated output depends on that order, so definitions never go
// through a Go map.
type Ordered[V any] []Pair[V]

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Ordered[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*o = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	seen := make(map[string]struct{}, len(node.Content)/2)
	pairs := make(Ordered[V], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if _, ok := seen[k.Value]; ok {
			return fmt.Errorf("line %d: key %q redeclared", k.Line, k.Value)
		}
		seen[k.Value] = struct{}{}
		var value V
		if err := v.Decode(&value); err != nil {
			return fmt.Errorf("key %q: %w", k.Value, err)
		}
		pairs = append(pairs, Pair[V]{Key: k.Value, Value: value})
	}
	*o = pairs
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package jschema

import (
	"bytes"
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// extractKeyOrder parses raw JSON and records the key order of every object,
// keyed by dotted path ("" for the root object, "properties" for the root
// properties object, "<title>.properties" inside a combined file, ...).
// JSON object keys are otherwise surfaced in map order, which is
// deliberately randomized by the runtime; generation must follow the order
// the schema author wrote.
func extractKeyOrder(raw []byte) map[string][]string {
	result := make(map[string][]string)

	var walk func(dec *json.Decoder, path string)
	walk = func(dec *json.Decoder, path string) {
		token, err := dec.Token()
		if err != nil {
			return
		}

		delim, ok := token.(json.Delim)
		if !ok {
			return
		}

		switch delim {
		case '{':
			var keys []string
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return
				}
				key, ok := keyToken.(string)
				if !ok {
					continue
				}
				keys = append(keys, key)
				walk(dec, joinPath(path, key))
			}
			_, _ = dec.Token() // closing brace
			result[path] = keys
		case '[':
			for dec.More() {
				walk(dec, path)
			}
			_, _ = dec.Token() // closing bracket
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	walk(dec, "")

	return result
}

// applyKeyOrder copies the recorded "properties" orders into the schema tree
// rooted at basePath. Only direct property objects are ordered; items and
// nested property objects get their own dotted paths.
func applyKeyOrder(s *Schema, keyOrder map[string][]string, basePath string) {
	if s == nil {
		return
	}

	propsPath := joinPath(basePath, "properties")

	if order, ok := keyOrder[propsPath]; ok && len(s.Properties) > 0 {
		s.PropertyOrder = nil
		for _, key := range order {
			if _, exists := s.Properties[key]; exists {
				s.PropertyOrder = append(s.PropertyOrder, key)
			}
		}
	}

	for name, prop := range s.Properties {
		applyKeyOrder(prop, keyOrder, joinPath(propsPath, name))
	}
	if s.Items != nil {
		applyKeyOrder(s.Items, keyOrder, joinPath(basePath, "items"))
	}
}

// yamlKeyOrder records the same path → key-order map as extractKeyOrder for
// a YAML document. yaml.v3 keeps mapping order in the node tree, so this is
// a plain walk.
func yamlKeyOrder(root *yaml.Node) map[string][]string {
	result := make(map[string][]string)

	var walk func(n *yaml.Node, path string)
	walk = func(n *yaml.Node, path string) {
		switch n.Kind {
		case yaml.DocumentNode:
			for _, c := range n.Content {
				walk(c, path)
			}
		case yaml.MappingNode:
			keys := make([]string, 0, len(n.Content)/2)
			for i := 0; i+1 < len(n.Content); i += 2 {
				key := n.Content[i].Value
				keys = append(keys, key)
				walk(n.Content[i+1], joinPath(path, key))
			}
			result[path] = keys
		case yaml.SequenceNode:
			for _, c := range n.Content {
				walk(c, path)
			}
		}
	}
	walk(root, "")

	return result
}

// orderedPropertyNames returns the schema's property names in declaration
// order when known, sorted otherwise.
func orderedPropertyNames(s *Schema) []string {
	if len(s.PropertyOrder) > 0 {
		names := make([]string, 0, len(s.PropertyOrder))
		seen := make(map[string]struct{}, len(s.PropertyOrder))
		for _, key := range s.PropertyOrder {
			if _, exists := s.Properties[key]; exists {
				names = append(names, key)
				seen[key] = struct{}{}
			}
		}
		// Properties absent from the recorded order (YAML documents, hand
		//-built schemas) still have to show up somewhere stable.
		var rest []string
		for name := range s.Properties {
			if _, ok := seen[name]; !ok {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		return append(names, rest...)
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// topLevelKeys returns the root object's key order from a combined document,
// filtered to keys present in the parsed map.
func topLevelKeys[V any](keyOrder map[string][]string, parsed map[string]V) []string {
	order := keyOrder[""]
	names := make([]string, 0, len(parsed))
	seen := make(map[string]struct{}, len(order))
	for _, key := range order {
		if _, exists := parsed[key]; exists {
			names = append(names, key)
			seen[key] = struct{}{}
		}
	}
	var rest []string
	for name := range parsed {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

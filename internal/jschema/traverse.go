// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package jschema

import (
	"iter"
	"sort"
)

// RefResolver resolves $ref strings to schemas.
// Return nil if the ref cannot be resolved.
type RefResolver func(ref string) *Schema

// Traverse returns an iterator over all schemas in the tree, visiting
// property subtrees in declaration order. It handles cycles by tracking
// visited schemas. If resolver is provided, it follows $ref links to their
// targets.
func Traverse(schema *Schema, resolver RefResolver) iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		visited := make(map[*Schema]struct{})
		traverseWithVisited(schema, resolver, yield, visited)
	}
}

func traverseWithVisited(schema *Schema, resolver RefResolver, yield func(*Schema) bool, visited map[*Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(schema) {
		return false
	}

	if schema.Ref != "" && resolver != nil {
		if resolved := resolver(schema.Ref); resolved != nil {
			if !traverseWithVisited(resolved, resolver, yield, visited) {
				return false
			}
		}
	}

	for _, name := range orderedPropertyNames(schema) {
		if !traverseWithVisited(schema.Properties[name], resolver, yield, visited) {
			return false
		}
	}

	if !traverseWithVisited(schema.Items, resolver, yield, visited) {
		return false
	}

	for _, name := range sortedKeys(schema.Defs) {
		if !traverseWithVisited(schema.Defs[name], resolver, yield, visited) {
			return false
		}
	}
	for _, name := range sortedKeys(schema.Definitions) {
		if !traverseWithVisited(schema.Definitions[name], resolver, yield, visited) {
			return false
		}
	}

	return true
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package display defines the results keeper commands hand to a renderer.
package display

import "github.com/arthur-debert/keeper/pkg/types"

// ValueResult is the answer to a single-key lookup.
type ValueResult struct {
	Path  string      `json:"path"`
	Key   string      `json:"key"`
	Value types.Value `json:"value"`
	Found bool        `json:"found"`
}

// BoolResult is a yes/no answer, such as has or delete.
type BoolResult struct {
	Command string `json:"command"`
	Path    string `json:"path"`
	Key     string `json:"key,omitempty"`
	Value   bool   `json:"value"`
}

// CountResult carries the number of keys of a store.
type CountResult struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// ListResult is a list of names: the keys of a store or the managed stores.
type ListResult struct {
	Command string   `json:"command"`
	Path    string   `json:"path,omitempty"`
	Items   []string `json:"items"`
}

// ValuesResult carries the values of a store in key order.
type ValuesResult struct {
	Path   string        `json:"path"`
	Values []types.Value `json:"values"`
}

// EntriesResult carries a snapshot of a whole store.
type EntriesResult struct {
	Path    string    `json:"path"`
	Entries types.Map `json:"entries"`
}

// ChangeResult reports a mutation or persistence operation.
type ChangeResult struct {
	Command string `json:"command"`
	Path    string `json:"path"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message"`
}

// VersionResult carries build information.
type VersionResult struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

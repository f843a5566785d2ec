package types

// ChangeEvent describes one key's mutation inside one store. A nil Value
// means the key was removed.
type ChangeEvent struct {
	Path  string `json:"path"`
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// IsRemoval reports whether the event signals that the key is gone.
func (e ChangeEvent) IsRemoval() bool {
	return e.Value == nil
}

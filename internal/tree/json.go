package tree

import "encoding/json"

// MarshalJSON encodes an atom as a JSON string.
func (a Atom) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

// MarshalJSON encodes a list as a JSON array. An empty list is `[]`, never
// `null`.
func (l List) MarshalJSON() ([]byte, error) {
	children := []Tree(l)
	if children == nil {
		children = []Tree{}
	}
	return json.Marshal(children)
}

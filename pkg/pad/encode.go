package pad

import "fmt"

// Encode serializes a node tree to its JSON wire form.
//
// Encode always returns parseable JSON. If structural marshaling fails,
// which is unreachable for trees built with the package constructors, the
// failure degrades to a hand-built error payload carrying the message
// instead of surfacing an error to the caller.
func Encode(root *Node) string {
	data, err := root.MarshalJSON()
	if err != nil {
		return fmt.Sprintf(`{"type": "error", "message": %q}`, "Serialization error: "+err.Error())
	}
	return string(data)
}

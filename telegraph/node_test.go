package telegraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// The Telegraph content format serializes text leaves as bare strings
// and elements as tag/attrs/children objects; attrs only appear on
// links.
func TestNodeMarshalJSON(t *testing.T) {
	nodes := []Node{
		Element{Tag: "h3", Children: []Node{Text("Title")}},
		Element{Tag: "p", Children: []Node{
			Text("see "),
			link("https://example.com", []Node{elem("strong", Text("this"))}),
			Text("."),
		}},
	}

	data, err := json.Marshal(nodes)
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"tag": "h3", "children": ["Title"]},
		{"tag": "p", "children": [
			"see ",
			{"tag": "a", "attrs": {"href": "https://example.com"},
			 "children": [{"tag": "strong", "children": ["this"]}]},
			"."
		]}
	]`, string(data))
}

func TestNodeMarshalOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(Element{Tag: "p"})
	require.NoError(t, err)
	require.JSONEq(t, `{"tag": "p"}`, string(data))
}

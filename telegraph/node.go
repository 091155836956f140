package telegraph

import "encoding/json"

// Node is one node of a Telegraph page DOM: either a Text leaf or an
// Element. The Telegraph API represents text leaves as bare JSON strings
// and elements as {"tag": ..., "attrs": ..., "children": ...} objects.
type Node interface {
	node()
}

// Text is a raw text leaf, used verbatim wherever plain content appears.
type Text string

// Element is a tagged node. Attrs is only set for links (single key
// "href"); Children holds text leaves and nested elements in order.
type Element struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

func (Text) node()    {}
func (Element) node() {}

// MarshalJSON serializes a text leaf as a bare string, per the Telegraph
// content format.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func elem(tag string, children ...Node) Element {
	return Element{Tag: tag, Children: children}
}

func link(href string, children []Node) Element {
	return Element{
		Tag:      "a",
		Attrs:    map[string]string{"href": href},
		Children: children,
	}
}

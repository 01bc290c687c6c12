package meta

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is one element of an XMP packet. Names carry their conventional
// namespace prefix, e.g. "dc:subject".
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Child returns the first direct child called name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Values flattens an XMP property: the rdf:li items of a Bag, Seq or Alt,
// or the node's own text.
func (n *Node) Values() []string {
	if n == nil {
		return nil
	}
	for _, container := range []string{"rdf:Bag", "rdf:Seq", "rdf:Alt"} {
		if list := n.Child(container); list != nil {
			var out []string
			for _, li := range list.Children {
				if li.Name == "rdf:li" {
					out = append(out, li.Text)
				}
			}
			return out
		}
	}
	if n.Text != "" {
		return []string{n.Text}
	}
	return nil
}

// XMP is a parsed XMP packet.
type XMP struct {
	Root *Node
}

var knownPrefixes = map[string]string{
	"adobe:ns:meta/":                              "x",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#": "rdf",
	"http://purl.org/dc/elements/1.1/":            "dc",
	"http://ns.adobe.com/xap/1.0/":                "xmp",
	"http://ns.adobe.com/xap/1.0/mm/":             "xmpMM",
	"http://ns.adobe.com/photoshop/1.0/":          "photoshop",
	"http://ns.adobe.com/exif/1.0/":               "exif",
	"http://ns.adobe.com/tiff/1.0/":               "tiff",
	"http://ns.adobe.com/lightroom/1.0/":          "lr",
	"http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/": "Iptc4xmpCore",
}

// ParseXMP builds the element tree of an XMP packet.
func ParseXMP(packet []byte) (*XMP, error) {
	prefixes := make(map[string]string, len(knownPrefixes))
	for uri, p := range knownPrefixes {
		prefixes[uri] = p
	}
	qname := func(n xml.Name) string {
		if n.Space == "" {
			return n.Local
		}
		if p, ok := prefixes[n.Space]; ok {
			return p + ":" + n.Local
		}
		if strings.ContainsAny(n.Space, ":/") {
			return n.Local
		}
		return n.Space + ":" + n.Local
	}

	dec := xml.NewDecoder(bytes.NewReader(packet))
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: XMP: %v", ErrCorruptFile, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					if _, ok := prefixes[a.Value]; !ok {
						prefixes[a.Value] = a.Name.Local
					}
				}
			}
			node := &Node{Name: qname(t.Name), Attrs: map[string]string{}}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				node.Attrs[qname(a.Name)] = a.Value
			}
			if len(stack) == 0 {
				if root == nil {
					root = node
				}
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Text += strings.TrimSpace(string(t))
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: XMP packet has no elements", ErrCorruptFile)
	}
	return &XMP{Root: root}, nil
}

// resolve walks path below n. The final segment may name an attribute,
// which XMP uses as shorthand for simple properties.
func resolve(n *Node, path []string) *Node {
	cur := n
	for i, seg := range path {
		next := cur.Child(seg)
		if next == nil && i == len(path)-1 {
			if v, ok := cur.Attrs[seg]; ok {
				return &Node{Name: seg, Attrs: map[string]string{}, Text: v}
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Lookup follows path from the root element. A leading segment equal to the
// root name is optional.
func (x *XMP) Lookup(path ...string) (*Node, error) {
	if x == nil || x.Root == nil || len(path) == 0 {
		return nil, &FieldError{Path: path}
	}
	rel := path
	if rel[0] == x.Root.Name {
		rel = rel[1:]
	}
	if n := resolve(x.Root, rel); n != nil {
		return n, nil
	}
	return nil, &FieldError{Path: path}
}

// Property finds path below any rdf:Description and returns its values.
func (x *XMP) Property(path ...string) ([]string, error) {
	if x == nil || x.Root == nil || len(path) == 0 {
		return nil, &FieldError{Path: path}
	}
	rdf := x.Root
	if rdf.Name != "rdf:RDF" {
		rdf = rdf.Child("rdf:RDF")
	}
	for _, c := range rdf.childrenNamed("rdf:Description") {
		if n := resolve(c, path); n != nil {
			return n.Values(), nil
		}
	}
	return nil, &FieldError{Path: path}
}

func (n *Node) childrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

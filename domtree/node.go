// Package domtree is a minimal DOM suitable as the output of tree
// construction: plain nodes with parent/child links and an html5lib-style
// dump for inspection and tests.
package domtree

import (
	"fmt"
	"sort"
	"strings"
)

type NodeType uint

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

func (nt NodeType) String() string {
	switch nt {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DoctypeNode:
		return "doctype"
	}
	return "unknown"
}

// Node is one node of the constructed tree. Name is set for elements and
// doctypes; Data holds text, comment, or doctype identifier payloads.
type Node struct {
	Type     NodeType
	Name     string
	Attrs    map[string]string
	Data     string
	Parent   *Node
	Children []*Node
}

// AppendChild detaches child from any previous parent and appends it.
func (n *Node) AppendChild(child *Node) {
	child.Detach()
	child.Parent = n
	n.Children = append(n.Children, child)
}

// InsertBefore detaches node and inserts it as a child of n just before ref.
// A nil ref appends.
func (n *Node) InsertBefore(node, ref *Node) {
	if ref == nil {
		n.AppendChild(node)
		return
	}
	node.Detach()
	for i, c := range n.Children {
		if c == ref {
			n.Children = append(n.Children, nil)
			copy(n.Children[i+1:], n.Children[i:])
			n.Children[i] = node
			node.Parent = n
			return
		}
	}
	n.AppendChild(node)
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	p := n.Parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// FirstChildElement returns the first element child with the given name.
func (n *Node) FirstChildElement(name string) *Node {
	for _, c := range n.Children {
		if c.Type == ElementNode && c.Name == name {
			return c
		}
	}
	return nil
}

// Dump renders the subtree in the html5lib tree-construction format, one
// node per line prefixed with "| " and two spaces per depth.
func (n *Node) Dump() string {
	var sb strings.Builder
	for _, c := range n.Children {
		c.dump(&sb, 0)
	}
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	sb.WriteString("| ")
	sb.WriteString(strings.Repeat("  ", depth))
	switch n.Type {
	case ElementNode:
		fmt.Fprintf(sb, "<%s>\n", n.Name)
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString("| ")
			sb.WriteString(strings.Repeat("  ", depth+1))
			fmt.Fprintf(sb, "%s=%q\n", k, n.Attrs[k])
		}
	case TextNode:
		fmt.Fprintf(sb, "%q\n", n.Data)
	case CommentNode:
		fmt.Fprintf(sb, "<!-- %s -->\n", n.Data)
	case DoctypeNode:
		fmt.Fprintf(sb, "<!DOCTYPE %s>\n", n.Name)
	default:
		sb.WriteString(n.Type.String())
		sb.WriteString("\n")
	}
	for _, c := range n.Children {
		c.dump(sb, depth+1)
	}
}

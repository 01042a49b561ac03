package domtree

// Builder accumulates tree-construction events into a Node tree. It keeps
// its own stack of open elements that mirrors the balanced start/end events
// it is fed; text, comments, and new elements attach to the innermost open
// element, or to the document before any element is open.
type Builder struct {
	doc  *Node
	open []*Node
}

func NewBuilder() *Builder {
	return &Builder{doc: &Node{Type: DocumentNode}}
}

// Document returns the root of the constructed tree.
func (d *Builder) Document() *Node {
	return d.doc
}

func (d *Builder) insertionPoint() *Node {
	if len(d.open) == 0 {
		return d.doc
	}
	return d.open[len(d.open)-1]
}

func (d *Builder) Doctype(name, publicID, systemID string) {
	d.doc.AppendChild(&Node{Type: DoctypeNode, Name: name, Data: publicID + " " + systemID})
}

func (d *Builder) StartElement(name string, attrs map[string]string, selfClosing bool) *Node {
	n := d.CreateElement(name, attrs)
	d.insertionPoint().AppendChild(n)
	if !selfClosing {
		d.open = append(d.open, n)
	}
	return n
}

func (d *Builder) EndElement(name string) {
	// Events arrive balanced, so the name is advisory.
	if len(d.open) > 0 {
		d.open = d.open[:len(d.open)-1]
	}
}

func (d *Builder) Text(data string) *Node {
	parent := d.insertionPoint()
	if n := len(parent.Children); n > 0 && parent.Children[n-1].Type == TextNode {
		// Adjacent text nodes merge, matching what a DOM normalizes to.
		parent.Children[n-1].Data += data
		return parent.Children[n-1]
	}
	n := &Node{Type: TextNode, Data: data}
	parent.AppendChild(n)
	return n
}

func (d *Builder) Comment(data string) {
	d.insertionPoint().AppendChild(&Node{Type: CommentNode, Data: data})
}

func (d *Builder) CreateElement(name string, attrs map[string]string) *Node {
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return &Node{Type: ElementNode, Name: name, Attrs: cp}
}

func (d *Builder) AppendChild(parent, child *Node) {
	parent.AppendChild(child)
}

func (d *Builder) RemoveFromParent(node *Node) {
	node.Detach()
}

func (d *Builder) ReparentChildren(from, to *Node) {
	for len(from.Children) > 0 {
		to.AppendChild(from.Children[0])
	}
}

func (d *Builder) InsertBefore(parent, node *Node, ref **Node) {
	if ref == nil {
		parent.InsertBefore(node, nil)
		return
	}
	parent.InsertBefore(node, *ref)
}

func (d *Builder) Parent(node *Node) (*Node, bool) {
	if node.Parent == nil {
		return nil, false
	}
	return node.Parent, true
}

func (d *Builder) TagName(node *Node) string {
	if node.Type != ElementNode {
		return ""
	}
	return node.Name
}

// FosterParent relocates node to just before table in table's parent. A
// parentless table leaves the node where it is.
func (d *Builder) FosterParent(table, node *Node) {
	if table.Parent == nil {
		return
	}
	if prev := previousText(table, node); prev != nil {
		// A fostered text run merges with text already fostered there.
		prev.Data += node.Data
		node.Detach()
		return
	}
	table.Parent.InsertBefore(node, table)
}

func previousText(table, node *Node) *Node {
	if node.Type != TextNode {
		return nil
	}
	for i, c := range table.Parent.Children {
		if c == table && i > 0 && table.Parent.Children[i-1].Type == TextNode {
			return table.Parent.Children[i-1]
		}
	}
	return nil
}

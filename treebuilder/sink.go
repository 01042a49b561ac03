package treebuilder

// TreeSink receives construction events from the builder and materializes
// them however it likes behind an opaque node id. The builder owns its sink
// for the duration of a build; no concurrent use is required of
// implementations.
//
// StartElement and Text return the id of the node they created so the
// builder can later relocate it (foster parenting) or repair around it
// (adoption agency).
type TreeSink[N comparable] interface {
	Doctype(name, publicID, systemID string)
	StartElement(name string, attrs map[string]string, selfClosing bool) N
	EndElement(name string)
	Text(data string) N
	Comment(data string)

	// Structural-repair operations. The simplified adoption agency in this
	// package only needs FosterParent and RemoveFromParent; the rest are part
	// of the contract so a conformance-exact adoption agency can be layered
	// on without changing sinks.
	CreateElement(name string, attrs map[string]string) N
	AppendChild(parent, child N)
	RemoveFromParent(node N)
	ReparentChildren(from, to N)
	InsertBefore(parent, node N, ref *N)
	Parent(node N) (N, bool)
	TagName(node N) string

	// FosterParent moves node to the position immediately before table.
	FosterParent(table, node N)
}

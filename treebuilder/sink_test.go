package treebuilder

import "fmt"

// traceSink records construction events as flat strings so tests can assert
// exact event order. Node ids are just a counter; names are remembered so
// foster events stay readable.
type traceSink struct {
	events []string
	nextID int
	names  map[int]string
}

func newTraceSink() *traceSink {
	return &traceSink{names: map[int]string{}}
}

func (s *traceSink) record(format string, args ...interface{}) {
	s.events = append(s.events, fmt.Sprintf(format, args...))
}

func (s *traceSink) alloc(name string) int {
	s.nextID++
	s.names[s.nextID] = name
	return s.nextID
}

func (s *traceSink) Doctype(name, publicID, systemID string) {
	s.record("doctype:%s", name)
}

func (s *traceSink) StartElement(name string, attrs map[string]string, selfClosing bool) int {
	s.record("start:%s", name)
	return s.alloc(name)
}

func (s *traceSink) EndElement(name string) {
	s.record("end:%s", name)
}

func (s *traceSink) Text(data string) int {
	s.record("text:%s", data)
	return s.alloc("#text")
}

func (s *traceSink) Comment(data string) {
	s.record("comment:%s", data)
}

func (s *traceSink) CreateElement(name string, attrs map[string]string) int {
	return s.alloc(name)
}

func (s *traceSink) AppendChild(parent, child int) {}

func (s *traceSink) RemoveFromParent(node int) {}

func (s *traceSink) ReparentChildren(from, to int) {}

func (s *traceSink) InsertBefore(parent, node int, ref *int) {}

func (s *traceSink) Parent(node int) (int, bool) { return 0, false }

func (s *traceSink) TagName(node int) string { return s.names[node] }

func (s *traceSink) FosterParent(table, node int) {
	s.record("foster:%s", s.names[node])
}

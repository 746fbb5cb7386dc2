package profile

import (
	"iter"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Section is the contiguous run of items that belong to one file.
type Section struct {
	p    *Profile
	file FileID
}

// FileSections returns an iterator over the file sections of p, in file
// order. The iterator may be restarted by ranging over it again.
func (p *Profile) FileSections() iter.Seq[Section] {
	return func(yield func(Section) bool) {
		first := true

		var last FileID

		for item := range p.Items() {
			if !first && item.File == last {
				continue
			}

			first, last = false, item.File

			if !yield(Section{p: p, file: item.File}) {
				return
			}
		}
	}
}

// FileSection returns the section of the file that item belongs to.
func (p *Profile) FileSection(item Item) Section {
	return Section{p: p, file: item.File}
}

// ID returns the id of the section's file.
func (s Section) ID() FileID { return s.file }

// File returns the description of the section's file.
func (s Section) File() FileInfo { return s.p.files.Info(s.file) }

// Head returns the file item of the section.
func (s Section) Head() Item {
	if item, ok := s.p.Find(FileItem(s.file)); ok {
		return item
	}

	return FileItem(s.file)
}

// Items returns an iterator over the file item followed by the lines of the
// section, in order.
func (s Section) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		node, ok := s.p.tree.Ceiling(FileItem(s.file))
		if !ok {
			return
		}

		for ; node != nil; node = successor(node) {
			item := node.Value.(Item)
			if item.File != s.file {
				return
			}

			if !yield(item) {
				return
			}
		}
	}
}

// Lines returns an iterator over the lines of the section, in order.
func (s Section) Lines() iter.Seq[LineInfo] {
	return func(yield func(LineInfo) bool) {
		for item := range s.Items() {
			if item.IsFile() {
				continue
			}

			if !yield(item.Line) {
				return
			}
		}
	}
}

// Len returns the number of items in the section, including its file item.
func (s Section) Len() int {
	n := 0
	for range s.Items() {
		n++
	}

	return n
}

// successor returns the in-order successor of n, or nil.
func successor(n *redblacktree.Node) *redblacktree.Node {
	if n.Right != nil {
		n = n.Right
		for n.Left != nil {
			n = n.Left
		}

		return n
	}

	for n.Parent != nil && n == n.Parent.Right {
		n = n.Parent
	}

	return n.Parent
}

package profile

import (
	"iter"
	"slices"
	"strconv"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Profile is an ordered, duplicate-free collection of items together with
// the names of the checkpoints the items refer to.
//
// A Profile is safe for concurrent reads. Insert must not be called
// concurrently with any other method.
type Profile struct {
	files *Files
	tree  *redblacktree.Tree
	names []string
}

// New returns an empty profile whose items reference files in the arena fs.
// The checkpoint with id i is named names[i].
func New(fs *Files, names ...string) *Profile {
	if fs == nil {
		fs = NewFiles()
	}

	p := &Profile{
		files: fs,
		names: slices.Clone(names),
	}

	p.tree = redblacktree.NewWith(p.compare)

	return p
}

func (p *Profile) compare(a, b any) int {
	return p.Compare(a.(Item), b.(Item))
}

// Compare orders two items of p.
func (p *Profile) Compare(a, b Item) int { return p.files.Compare(a, b) }

// Insert adds item to p. A stored item with an equal ordering key is
// replaced.
func (p *Profile) Insert(item Item) { p.tree.Put(item, item) }

// Find returns the stored item whose ordering key equals key.
func (p *Profile) Find(key Item) (Item, bool) {
	v, ok := p.tree.Get(key)
	if !ok {
		return Item{}, false
	}

	return v.(Item), true
}

// Len returns the number of items in p.
func (p *Profile) Len() int { return p.tree.Size() }

// Files returns the arena of files referenced by p.
func (p *Profile) Files() *Files { return p.files }

// File returns the description of file id.
func (p *Profile) File(id FileID) FileInfo { return p.files.Info(id) }

// Items returns an iterator over every item of p in order.
func (p *Profile) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		it := p.tree.Iterator()
		for it.Next() {
			if !yield(it.Value().(Item)) {
				return
			}
		}
	}
}

// Slice returns the items at positions [from, to) of the ordered sequence,
// clamped to the bounds of p.
func (p *Profile) Slice(from, to int) []Item {
	from = max(from, 0)
	to = min(to, p.Len())

	if from >= to {
		return nil
	}

	out := make([]Item, 0, to-from)

	i := 0
	for item := range p.Items() {
		if i >= to {
			break
		}

		if i >= from {
			out = append(out, item)
		}

		i++
	}

	return out
}

// Checkpoints returns the declared checkpoint names in id order.
func (p *Profile) Checkpoints() []string { return slices.Clone(p.names) }

// CheckpointName returns the name of checkpoint id, or "#id" if the id was
// never declared.
func (p *Profile) CheckpointName(id uint32) string {
	if int(id) < len(p.names) {
		return p.names[id]
	}

	return "#" + strconv.FormatUint(uint64(id), 10)
}

// Names returns the names of the checkpoints in set, in id order.
func (p *Profile) Names(set Set) []string {
	if set.Len() == 0 {
		return nil
	}

	out := make([]string, 0, set.Len())
	for id := range set.All() {
		out = append(out, p.CheckpointName(id))
	}

	return out
}

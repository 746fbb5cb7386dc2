// Package profile models a checkpoint trace as an ordered set of source
// files and source lines.
//
// # Items
//
// A [Profile] holds [Item] values. Each item is either the header of a file
// ([KindFile]) or one source line of that file ([KindLine]). Items are kept
// in a total order:
//
//   - the file whose name is [UnknownName] sorts before every other file,
//     other files sort by directory, then by file name;
//   - within a file, the file header comes first;
//   - lines of files with debug information sort by line number;
//   - lines of files without debug information sort by function name, with
//     lines of an unknown function last, then by line number.
//
// Inserting an item whose ordering key matches a stored item replaces the
// stored item. Because of the ordering, all items of one file are
// contiguous, and [Profile.FileSections] walks them one file at a time.
//
// # File identity
//
// Files are interned in a [Files] arena and referenced from items by
// [FileID]. The arena is shared by a profile and every profile derived from
// it with [Profile.Synced].
//
// # Synchronization
//
// Trace records are sparse. [Profile.Synced] merges each file section with
// the physical lines of the file on disk so that every line 1..N of the file
// appears exactly once, carrying the recorded checkpoints and address range
// where the trace had a record, and an empty record otherwise. Files that
// cannot be read, and files without debug information, pass through
// unchanged.
//
//	p := profile.Build(names, records, profile.WithDirectory(root))
//	synced := p.Synced(ctx, profile.WithJobs(4))
//	for section := range synced.FileSections() {
//		for line := range section.Lines() {
//			fmt.Println(line.Nb, line.Text())
//		}
//	}
package profile

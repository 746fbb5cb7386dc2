// Package view is the interactive profile viewer.
//
// The screen has three columns: the checkpoints that executed each line,
// the instruction address range of the line, and the source listing with
// one header row per file. Lines rejected by the active filter are dimmed.
//
// Keys:
//
//	↑/k ↓/j           scroll one line
//	pgup pgdown       scroll one page
//	home/g end/G      first or last page
//	n N               next or previous file
//	/                 jump to a file by fuzzy name
//	f                 edit the filter expression (see package query)
//	esc               clear the filter
//	r                 re-read source files
//	q ctrl+c          quit
package view

// Package trace parses checkpoint traces.
//
// A trace lists the named checkpoints of a run followed by the code
// locations executed between them:
//
//	checkpoints:
//	    memviz_begin
//	    Before_hello
//	code locations:
//	file: hello.c
//	    function: main
//	        13 0x1089d1 -> 0x108a29 0 1
//
// Each record holds a line number, an instruction address range, and the
// ids of the checkpoints that executed it; ids are the 0-based declaration
// order of the checkpoints. Indentation is insignificant, and blank lines
// and lines starting with "#" are ignored.
//
// [Parse] either returns every record or fails with a [*ParseError]
// matching [ErrParse]; there is no partial result.
package trace

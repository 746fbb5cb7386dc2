package view

import (
	"strconv"
	"strings"

	"github.com/ardnew/ckview/profile"
)

const (
	fileTag      = "[fl] "
	addrWidth    = 24 // "%010x -> %010x"
	numberWidth  = 5
	minCkWidth   = len("Checkpoints")
	maxCkWidth   = 32
	columnGap    = 2
	functionText = "in function: "
)

// Columns returns the checkpoint, address range, and source columns of
// item as plain text.
func Columns(p *profile.Profile, item profile.Item) (checkpoints, addr, src string) {
	if item.IsFile() {
		info := p.File(item.File)

		return strings.Join(p.Names(info.Checkpoints), ", "), "", fileTag + info.Path.Expand()
	}

	line := item.Line

	return strings.Join(p.Names(line.Checkpoints), ", "), line.AddrRange.String(), sourceText(line)
}

// sourceText is the numbered content of line, or the name of its function
// when the content is unknown.
func sourceText(line profile.LineInfo) string {
	num := strings.Repeat(" ", numberWidth)
	if line.Nb > 0 {
		num = padLeft(strconv.Itoa(line.Nb), numberWidth)
	}

	if line.Content != nil {
		return num + "  " + *line.Content
	}

	return num + "  " + functionText + line.FunctionName()
}

func padLeft(s string, w int) string {
	if len(s) >= w {
		return s
	}

	return strings.Repeat(" ", w-len(s)) + s
}

// checkpointWidth returns the width of the checkpoint column of p.
func checkpointWidth(p *profile.Profile) int {
	w := minCkWidth

	for item := range p.Items() {
		ck, _, _ := Columns(p, item)
		w = max(w, len(ck))

		if w >= maxCkWidth {
			return maxCkWidth
		}
	}

	return w
}

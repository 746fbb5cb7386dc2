package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ckview/profile"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.titleRow())
	b.WriteByte('\n')

	from, to := profile.Window(m.profile.Len(), m.rows(), m.pos)
	for _, item := range m.profile.Slice(from, to) {
		b.WriteString(m.row(item))
		b.WriteByte('\n')
	}

	for range m.rows() - (to - from) {
		b.WriteByte('\n')
	}

	b.WriteString(m.hintLine())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())

	return b.String()
}

func (m model) srcWidth() int {
	return max(m.width-m.ckWidth-addrWidth-2*columnGap, 0)
}

func (m model) titleRow() string {
	gap := strings.Repeat(" ", columnGap)
	title := m.title
	if title == "" {
		title = "Source"
	}

	return cell(titleStyle, "Checkpoints", m.ckWidth) + gap +
		cell(titleStyle, "Address range", addrWidth) + gap +
		cell(titleStyle, title, m.srcWidth())
}

func (m model) row(item profile.Item) string {
	ck, addr, src := Columns(m.profile, item)
	gap := strings.Repeat(" ", columnGap)

	if item.IsFile() {
		return cell(checkpointStyle, ck, m.ckWidth) + gap +
			cell(addrStyle, addr, addrWidth) + gap +
			cell(fileStyle, src, m.srcWidth())
	}

	if ok, err := m.filter.Match(m.profile, item); !ok || err != nil {
		return cell(dimStyle, ck, m.ckWidth) + gap +
			cell(dimStyle, addr, addrWidth) + gap +
			cell(dimStyle, src, m.srcWidth())
	}

	srcStyle := lipgloss.NewStyle()
	if item.Line.Content == nil {
		srcStyle = functionStyle
	}

	return cell(checkpointStyle, ck, m.ckWidth) + gap +
		cell(addrStyle, addr, addrWidth) + gap +
		cell(srcStyle, src, m.srcWidth())
}

// hintLine shows the file candidates while jumping, and key help otherwise.
func (m model) hintLine() string {
	switch m.mode {
	case modeJump:
		if len(m.matches) == 0 {
			return hintStyle.Render("no matching file")
		}

		return renderCandidateBar(m.matches, m.selected, m.width)
	case modeFilter:
		return hintStyle.Render("expr over nb, file, function, content, addr_min, addr_max, checkpoints, debug, hit(name)")
	}

	return m.help.View(m.keys)
}

func (m model) statusLine() string {
	if m.mode != modeBrowse {
		return m.input.View()
	}

	var b strings.Builder

	total := m.profile.Len()
	_, to := profile.Window(total, m.rows(), m.pos)
	b.WriteString(hintStyle.Render(strconv.Itoa(to) + "/" + strconv.Itoa(total)))

	if i := m.section(); i >= 0 {
		b.WriteString("  ")
		b.WriteString(fileStyle.Render(m.files[i]))
	}

	if m.filter != nil {
		b.WriteString("  ")
		b.WriteString(promptStyle.Render("filter: "))
		b.WriteString(m.filter.String())
	}

	if m.status != "" {
		b.WriteString("  ")

		if m.failed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(hintStyle.Render(m.status))
		}
	}

	return lipgloss.NewStyle().Inline(true).MaxWidth(max(m.width, 1)).Render(b.String())
}

// renderCandidateBar renders matches on one line, highlighting the selected
// one and eliding whatever does not fit in width.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	const sep = "  "

	ellipsis := hintStyle.Render("...")

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected)

		entry := lipgloss.Width(rendered)
		if i > 0 {
			entry += len(sep)
		}

		if i > 0 && used+entry+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entry
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := fileStyle.UnsetBold()
	if selected {
		base = selectedStyle
	}

	hit := base.Bold(true).Underline(true)

	var b strings.Builder

	next := 0
	for i, r := range match.Str {
		if next < len(match.MatchedIndexes) && match.MatchedIndexes[next] == i {
			b.WriteString(hit.Render(string(r)))
			next++

			continue
		}

		b.WriteString(base.Render(string(r)))
	}

	return b.String()
}

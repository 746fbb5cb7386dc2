package view

import (
	"context"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ckview/log"
	"github.com/ardnew/ckview/profile"
	"github.com/ardnew/ckview/query"
)

// syncedMsg carries the result of a resync.
type syncedMsg struct {
	profile *profile.Profile
	err     error
}

type mode int

const (
	modeBrowse mode = iota
	modeJump
	modeFilter
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// chrome is the number of screen rows not used for items: the column
	// titles, the hint line, and the status line.
	chrome = 3
)

type model struct {
	ctxFunc  func() context.Context
	logger   log.Logger
	profile  *profile.Profile
	filter   *query.Filter
	resync   Resync
	keys     keyMap
	help     help.Model
	input    textinput.Model
	matches  fuzzy.Matches
	title    string
	status   string
	heads    []int    // positions of the file items
	files    []string // paths of the file items, parallel to heads
	pos      int
	width    int
	height   int
	ckWidth  int
	selected int
	mode     mode
	failed   bool // status is an error
	syncing  bool
	quitting bool
}

func newModel(ctx context.Context, p *profile.Profile, cfg config) model {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	m := model{
		ctxFunc: func() context.Context { return ctx },
		logger:  cfg.logger,
		filter:  cfg.filter,
		resync:  cfg.resync,
		keys:    newKeyMap(),
		help:    help.New(),
		input:   ti,
		title:   cfg.title,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.load(p)

	return m
}

// load replaces the displayed profile and indexes its file items.
func (m *model) load(p *profile.Profile) {
	m.profile = p
	m.heads = nil
	m.files = nil

	i := 0
	for item := range p.Items() {
		if item.IsFile() {
			m.heads = append(m.heads, i)
			m.files = append(m.files, p.File(item.File).Path.Expand())
		}

		i++
	}

	m.ckWidth = checkpointWidth(p)
	m.clamp()
}

func (m model) rows() int { return max(m.height-chrome, 1) }

// clamp keeps the scroll position inside the window of the profile.
func (m *model) clamp() {
	m.pos, _ = profile.Window(m.profile.Len(), m.rows(), m.pos)
}

// section returns the index in heads of the file shown at the top row, or
// -1 if there is none.
func (m model) section() int {
	i, found := slices.BinarySearch(m.heads, m.pos)
	if !found {
		i--
	}

	return i
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.logger.TraceContext(
			m.ctxFunc(),
			"view keypress",
			slog.String("key", msg.String()),
			slog.Int("mode", int(m.mode)),
		)

		if m.mode == modeBrowse {
			return m.browse(msg)
		}

		return m.prompt(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 1)
		m.clamp()

		return m, nil

	case syncedMsg:
		m.syncing = false

		if msg.err != nil {
			m.setError(msg.err)
			m.logger.WarnContext(m.ctxFunc(), "resync failed", slog.Any("error", msg.err))

			return m, nil
		}

		m.load(msg.profile)
		m.setStatus("re-synchronized")

		return m, nil
	}

	if m.mode != modeBrowse {
		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *model) setStatus(s string) { m.status, m.failed = s, false }
func (m *model) setError(err error) { m.status, m.failed = err.Error(), true }

func (m model) browse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.pos--

	case key.Matches(msg, m.keys.Down):
		m.pos++

	case key.Matches(msg, m.keys.PageUp):
		m.pos -= m.rows()

	case key.Matches(msg, m.keys.PageDown):
		m.pos += m.rows()

	case key.Matches(msg, m.keys.Top):
		m.pos = 0

	case key.Matches(msg, m.keys.Bottom):
		m.pos = m.profile.Len()

	case key.Matches(msg, m.keys.NextFile):
		if i, _ := slices.BinarySearch(m.heads, m.pos+1); i < len(m.heads) {
			m.pos = m.heads[i]
		}

	case key.Matches(msg, m.keys.PrevFile):
		if i, _ := slices.BinarySearch(m.heads, m.pos); i > 0 {
			m.pos = m.heads[i-1]
		}

	case key.Matches(msg, m.keys.Jump):
		m.mode = modeJump
		m.input.Prompt = promptStyle.Render("/")
		m.input.SetValue("")
		m.refreshMatches()
		cmd := m.input.Focus()

		return m, cmd

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.input.Prompt = promptStyle.Render("filter: ")
		m.input.SetValue(m.filter.String())
		m.input.CursorEnd()
		cmd := m.input.Focus()

		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		if m.filter != nil {
			m.filter = nil
			m.setStatus("filter cleared")
		}

	case key.Matches(msg, m.keys.Resync):
		if m.resync == nil || m.syncing {
			return m, nil
		}

		m.syncing = true
		m.setStatus("synchronizing…")

		return m, m.resyncCmd()
	}

	m.clamp()

	return m, nil
}

func (m model) resyncCmd() tea.Cmd {
	ctx, fn := m.ctxFunc(), m.resync

	return func() tea.Msg {
		p, err := fn(ctx)

		return syncedMsg{profile: p, err: err}
	}
}

// prompt handles keys while the text input is active.
func (m model) prompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEsc:
		m.closePrompt()

		return m, nil

	case tea.KeyEnter:
		if m.mode == modeJump {
			m.acceptJump()
		} else {
			m.acceptFilter()
		}

		m.closePrompt()

		return m, nil

	case tea.KeyTab:
		if m.mode == modeJump && len(m.matches) > 0 {
			m.selected = (m.selected + 1) % len(m.matches)
		}

		return m, nil

	case tea.KeyShiftTab:
		if m.mode == modeJump && len(m.matches) > 0 {
			m.selected = (m.selected + len(m.matches) - 1) % len(m.matches)
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.mode == modeJump {
		m.refreshMatches()
	}

	return m, cmd
}

func (m *model) closePrompt() {
	m.mode = modeBrowse
	m.matches = nil
	m.selected = 0
	m.input.Blur()
}

// refreshMatches ranks the file paths against the jump pattern. An empty
// pattern lists every file in order.
func (m *model) refreshMatches() {
	m.selected = 0

	pattern := m.input.Value()
	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.files))
		for i, s := range m.files {
			m.matches[i] = fuzzy.Match{Str: s, Index: i}
		}

		return
	}

	m.matches = fuzzy.Find(pattern, m.files)
}

func (m *model) acceptJump() {
	if len(m.matches) == 0 {
		m.setStatus("no matching file")

		return
	}

	match := m.matches[m.selected]
	m.pos = m.heads[match.Index]
	m.clamp()
	m.setStatus(match.Str)
}

func (m *model) acceptFilter() {
	f, err := query.Compile(m.input.Value())
	if err != nil {
		m.setError(err)

		return
	}

	m.filter = f

	if f == nil {
		m.setStatus("filter cleared")
	} else {
		m.setStatus("filter: " + f.String())
	}

	m.logger.DebugContext(m.ctxFunc(), "view filter", slog.String("filter", f.String()))
}

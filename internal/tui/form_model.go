package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbonplan/internal/logging"
	"github.com/rshade/carbonplan/internal/roadmap"
	"github.com/rshade/carbonplan/internal/scenario"
	"github.com/rshade/carbonplan/internal/session"
)

// DefaultRoadmapFile is the file the form saves roadmaps to.
const DefaultRoadmapFile = "roadmap.txt"

// RoadmapGenerator produces a roadmap for a calculated scenario.
// *roadmap.Service satisfies it.
type RoadmapGenerator interface {
	Generate(ctx context.Context, req roadmap.Request) (*roadmap.Roadmap, error)
}

// roadmapMsg carries a finished generation for the projection identified
// by scenarioID.
type roadmapMsg struct {
	scenarioID string
	roadmap    *roadmap.Roadmap
	err        error
}

type savedMsg struct {
	path string
	err  error
}

// FormModel is the bubbletea model of the interactive scenario form.
type FormModel struct {
	ctx       context.Context
	state     *session.State
	generator RoadmapGenerator
	savePath  string
	writeFile func(name string, data []byte, perm os.FileMode) error
	precision int

	fields  []formField
	focused int

	spinner    spinner.Model
	generating bool
	rendered   string

	err    error
	status string

	width    int
	quitting bool
}

// FormOption configures a FormModel.
type FormOption func(*FormModel)

// WithSavePath sets the file the s key writes the roadmap to.
func WithSavePath(path string) FormOption {
	return func(m *FormModel) { m.savePath = path }
}

// WithWriteFile replaces os.WriteFile for saving.
func WithWriteFile(fn func(name string, data []byte, perm os.FileMode) error) FormOption {
	return func(m *FormModel) { m.writeFile = fn }
}

// WithPrecision sets the number of decimals shown in the scenario table.
func WithPrecision(precision int) FormOption {
	return func(m *FormModel) { m.precision = precision }
}

// NewFormModel builds the form pre-filled from state. gen may be nil, in
// which case roadmap generation reports an error.
func NewFormModel(ctx context.Context, state *session.State, gen RoadmapGenerator, opts ...FormOption) *FormModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorHighlight)

	m := &FormModel{
		ctx:       ctx,
		state:     state,
		generator: gen,
		savePath:  DefaultRoadmapFile,
		writeFile: os.WriteFile,
		precision: scenario.DefaultPrecision,
		fields:    newFormFields(state.Profile, state.Input),
		spinner:   sp,
		width:     DefaultWrap,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.focus(0)
	return m
}

// State returns the session state the form edits.
func (m *FormModel) State() *session.State {
	return m.state
}

// Err returns the error currently displayed, if any.
func (m *FormModel) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.renderRoadmap()
		return m, nil

	case roadmapMsg:
		return m.handleRoadmap(msg)

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = "Saved roadmap to " + msg.path
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m *FormModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		m.focus(m.focused + 1)
		return m, nil
	case "shift+tab", "up":
		m.focus(m.focused - 1)
		return m, nil
	case "enter":
		m.calculate()
		return m, nil
	case "esc":
		m.blur()
		return m, nil
	}

	// Letters are text while an input field has focus.
	if f := m.current(); f != nil && f.editable() {
		return m.updateInput(msg)
	}

	switch msg.String() {
	case "left":
		if f := m.current(); f != nil {
			f.cycle(-1)
		}
	case "right", " ":
		if f := m.current(); f != nil {
			f.cycle(1)
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "g":
		return m, m.startGeneration()
	case "s":
		return m, m.save()
	}
	return m, nil
}

func (m *FormModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := m.current()
	if f == nil || !f.editable() {
		return m, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}

// current returns the focused field, or nil when the form is blurred.
func (m *FormModel) current() *formField {
	if m.focused < 0 || m.focused >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focused]
}

func (m *FormModel) focus(i int) {
	n := len(m.fields)
	i = (i%n + n) % n
	for j := range m.fields {
		m.fields[j].input.Blur()
	}
	m.focused = i
	if f := &m.fields[i]; f.editable() {
		f.input.Focus()
	}
}

func (m *FormModel) blur() {
	for j := range m.fields {
		m.fields[j].input.Blur()
	}
	m.focused = -1
}

func (m *FormModel) calculate() {
	m.status = ""
	profile, in, err := collectForm(m.fields)
	if err == nil {
		err = m.state.Recalculate(profile, in)
	}
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.rendered = ""
	// Any generation still running belongs to the previous projection.
	m.generating = false
	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Int("rows", len(m.state.Result)).
		Msg("scenario calculated")
}

func (m *FormModel) startGeneration() tea.Cmd {
	if m.generating {
		return nil
	}
	req, err := m.state.RoadmapRequest()
	if err != nil {
		m.err = err
		return nil
	}
	if m.generator == nil {
		m.err = fmt.Errorf("roadmap generation is not configured")
		return nil
	}

	m.err = nil
	m.status = ""
	m.generating = true

	ctx, gen, id := m.ctx, m.generator, m.state.ScenarioID
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		rm, genErr := gen.Generate(ctx, req)
		return roadmapMsg{scenarioID: id, roadmap: rm, err: genErr}
	})
}

func (m *FormModel) handleRoadmap(msg roadmapMsg) (tea.Model, tea.Cmd) {
	if msg.scenarioID != m.state.ScenarioID {
		logging.FromContext(m.ctx).Debug().
			Str("component", "tui").
			Msg("discarding roadmap for a replaced scenario")
		return m, nil
	}
	m.generating = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	if err := m.state.AttachRoadmap(msg.scenarioID, msg.roadmap); err != nil {
		m.err = err
		return m, nil
	}
	m.renderRoadmap()
	if msg.roadmap.Cached {
		m.status = "Roadmap served from cache"
	}
	return m, nil
}

func (m *FormModel) renderRoadmap() {
	if m.state.Roadmap == nil {
		m.rendered = ""
		return
	}
	out, err := RenderMarkdown(m.state.Roadmap.Markdown, m.width-4, true)
	if err != nil {
		out = m.state.Roadmap.Markdown
	}
	m.rendered = out
}

func (m *FormModel) save() tea.Cmd {
	if m.state.Roadmap == nil {
		m.err = fmt.Errorf("no roadmap to save: press g to generate one")
		return nil
	}
	path, data, write := m.savePath, []byte(m.state.Roadmap.Markdown+"\n"), m.writeFile
	return func() tea.Msg {
		if err := write(path, data, 0o644); err != nil {
			return savedMsg{path: path, err: fmt.Errorf("saving roadmap: %w", err)}
		}
		return savedMsg{path: path}
	}
}

// View implements tea.Model.
func (m *FormModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	sb.WriteString(title.Render("Emission reduction scenario"))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderFields())

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorError).Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorOK).Render(m.status))
		sb.WriteString("\n")
	}

	if m.state.HasScenario() {
		report := m.state.Report().WithPrecision(m.precision)
		sb.WriteString("\n")
		sb.WriteString(RenderScenarioTable(report))
		sb.WriteString("\n")
		sb.WriteString(RenderScenarioChart(report))
		sb.WriteString("\n\n")
		sb.WriteString(RenderScenarioSummary(report))
		sb.WriteString("\n")
	}

	switch {
	case m.generating:
		sb.WriteString("\n" + m.spinner.View() + " " + RenderLoadingIndicator() + "\n")
	case m.rendered != "":
		sb.WriteString("\n" + m.rendered)
	}

	sb.WriteString("\n")
	sb.WriteString(renderFormHelp())
	return sb.String()
}

func (m *FormModel) renderFields() string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel).Width(22)
	focusStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true).Width(22)
	choiceStyle := lipgloss.NewStyle().Foreground(ColorValue)

	var sb strings.Builder
	for i := range m.fields {
		f := &m.fields[i]
		marker, style := "  ", labelStyle
		if i == m.focused {
			marker, style = "> ", focusStyle
		}
		sb.WriteString(marker)
		sb.WriteString(style.Render(f.label))
		if f.editable() {
			sb.WriteString(f.input.View())
		} else {
			sb.WriteString(choiceStyle.Render("< " + f.value() + " >"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func renderFormHelp() string {
	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	return muted.Render("tab/shift+tab move · ←/→ change option · enter calculate · " +
		"esc leave field, then g generate · s save · q quit")
}

// RunForm runs m as a full-screen program until the user quits or ctx is
// cancelled.
func RunForm(ctx context.Context, m *FormModel) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running form: %w", err)
	}
	return nil
}

package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/savioxavier/termlink"
)

// generatedMsg is delivered when a generate request started from the view has finished.
type generatedMsg struct {
	err error
}

type prompt struct {
	title string
	text  string
}

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF88")).Background(lipgloss.Color("#444444"))
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("62")).Padding(0, 1)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3333"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1)
)

// chrome is the number of lines drawn around the list viewport.
const chrome = 10

type PanelModel struct {
	ctx    context.Context
	cfg    Config
	panel  *Panel
	input  textinput.Model
	list   viewport.Model
	loader spinner.Model
	prompt *prompt
}

// NewPanelModel builds the interactive generator panel. opts are applied after the defaults,
// so callers may replace the clipboard or the prompt.
func NewPanelModel(ctx context.Context, cfg Config, opts ...PanelOption) (*PanelModel, error) {
	backend, err := NewClientFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("how many names? (%d-%d)", MinCount, MaxCount)
	ti.Prompt = "Count: "
	ti.CharLimit = 16
	ti.Width = 24
	ti.SetValue(cfg.Count)
	ti.Focus()

	vp := viewport.New(80, 20)

	c := &PanelModel{
		ctx:   ctx,
		cfg:   cfg,
		input: ti,
		list:  vp,
		loader: spinner.New(
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205"))),
			spinner.WithSpinner(spinner.Dot),
		),
	}
	c.panel = NewPanel(backend, append([]PanelOption{WithPrompter(c)}, opts...)...)
	c.syncList()
	return c, nil
}

func (m *PanelModel) Panel() *Panel {
	return m.panel
}

// Prompt shows text in an overlay until any key is pressed.
func (m *PanelModel) Prompt(title, text string) {
	m.prompt = &prompt{title: title, text: text}
}

func (m *PanelModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.Width = msg.Width
		m.list.Height = max(msg.Height-chrome, 3)
		return m, nil
	case spinner.TickMsg:
		if !m.panel.State().Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd
	case generatedMsg:
		m.syncList()
		return m, nil
	case tea.KeyMsg:
		if m.prompt != nil {
			m.prompt = nil
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter, tea.KeyCtrlG:
			return m, m.generate()
		case tea.KeyCtrlY:
			_ = m.panel.Copy()
			return m, nil
		}
	}

	var tiCmd, vpCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	// typed characters belong to the input; only navigation keys and mouse scroll the list
	if key, ok := msg.(tea.KeyMsg); !ok || (key.Type != tea.KeyRunes && key.Type != tea.KeySpace) {
		m.list, vpCmd = m.list.Update(msg)
	}
	return m, tea.Batch(tiCmd, vpCmd)
}

// generate starts a request unless one is in flight, the same way a disabled button ignores clicks.
func (m *PanelModel) generate() tea.Cmd {
	if m.panel.State().Busy {
		return nil
	}
	req, err := m.panel.Prepare(m.input.Value())
	if err != nil {
		return nil
	}
	ctx := m.ctx
	return tea.Batch(m.loader.Tick, func() tea.Msg {
		return generatedMsg{err: req.Do(ctx)}
	})
}

func (m *PanelModel) syncList() {
	items := m.panel.State().Items
	m.list.SetContent(strings.Join(lo.Map(items, func(name string, i int) string {
		return fmt.Sprintf("%4d. %s", i+1, name)
	}), "\n"))
	m.list.GotoTop()
}

func (m *PanelModel) View() string {
	if m.prompt != nil {
		return headerStyle.Render(m.prompt.title) + "\n\n" +
			promptStyle.Render(m.prompt.text) + "\n\n" +
			helpStyle.Render("select the text above to copy it, then press any key") + "\n"
	}

	state := m.panel.State()

	header := headerStyle.Render("namegen")
	if m.cfg.ApiBase != "" {
		header += " " + termlink.ColorLink(m.cfg.ApiBase, m.cfg.ApiBase, "italic green")
	}

	generate := buttonStyle.Render(state.GenerateLabel)
	if state.Busy {
		generate = m.loader.View() + disabledStyle.Render(state.GenerateLabel)
	}
	copyButton := lo.Ternary(state.CopyEnabled, buttonStyle, disabledStyle).Render("Copy")

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(generate + " " + copyButton + "\n\n")
	b.WriteString(errorStyle.Render(state.Error) + "\n")
	b.WriteString(metaStyle.Render(state.Meta) + "\n")
	b.WriteString(m.list.View() + "\n\n")
	b.WriteString(helpStyle.Render("enter/ctrl+g: generate • ctrl+y: copy • ↑/↓: scroll • esc: quit") + "\n")
	return b.String()
}

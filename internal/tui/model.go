package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/history"
	"docchat/internal/service"
)

// Command is the classification of one line of user input.
type Command int

const (
	CommandAsk Command = iota
	CommandExit
	CommandHistory
	CommandClear
	CommandNone // empty or whitespace-only input, re-prompt
)

// Classify matches the trimmed input against the reserved commands,
// case-insensitive exact match. Anything else non-empty is a question.
func Classify(input string) (Command, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return CommandNone, ""
	}
	switch strings.ToLower(trimmed) {
	case "exit":
		return CommandExit, trimmed
	case "history":
		return CommandHistory, trimmed
	case "clear":
		return CommandClear, trimmed
	}
	return CommandAsk, trimmed
}

// ChatPort is the TUI-facing subset of the chat service.
type ChatPort interface {
	Ask(ctx context.Context, question string, hist *history.Buffer) (service.Reply, error)
}

// Model is the Bubble Tea model for the chat loop. Each question is fully
// processed before the next prompt is read.
type Model struct {
	service    ChatPort
	hist       *history.Buffer
	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	status     string
	ready      bool
}

// New creates a new chat model instance.
func New(svc ChatPort, hist *history.Buffer) Model {
	ti := textinput.New()
	ti.Prompt = "Ask me anything--> "
	ti.Placeholder = "exit, history, clear, or a question"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: svc, hist: hist, input: ti, viewport: vp, status: "Ready."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.handleLine(m.input.Value())
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleLine(line string) (tea.Model, tea.Cmd) {
	command, text := Classify(line)
	m.input.SetValue("")
	switch command {
	case CommandNone:
		return m, nil
	case CommandExit:
		return m, tea.Quit
	case CommandHistory:
		m.transcript = append(m.transcript, historyStyle.Render(m.hist.Format()))
		m.status = "History shown."
	case CommandClear:
		m.hist.Clear()
		m.transcript = nil
		m.status = "History cleared."
	case CommandAsk:
		m.transcript = append(m.transcript, questionStyle.Render("You: "+text))
		reply, err := m.service.Ask(context.Background(), text, m.hist)
		if err != nil {
			m.status = "Error: " + err.Error()
			m.transcript = append(m.transcript, errorStyle.Render("Error: "+err.Error()))
		} else if !reply.FromModel {
			m.status = "No relevant documents."
			m.transcript = append(m.transcript, answerStyle.Render(reply.Text))
		} else {
			m.status = fmt.Sprintf("Answered using %d source chunk(s).", len(reply.Sources))
			m.transcript = append(m.transcript, answerStyle.Render("Bot: "+reply.Text))
		}
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m, nil
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("docchat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "Ask a question about the indexed document."
	}
	return strings.Join(m.transcript, "\n\n")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	answerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	historyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
	"docchat/internal/history"
	"docchat/internal/service"
)

// fakeChat records whether the retrieval operation was reached.
type fakeChat struct {
	calls     int
	questions []string
}

func (f *fakeChat) Ask(ctx context.Context, question string, hist *history.Buffer) (service.Reply, error) {
	f.calls++
	f.questions = append(f.questions, question)
	hist.Append(domain.Turn{Question: question, Answer: "answer"})
	return service.Reply{Text: "answer", FromModel: true}, nil
}

func TestClassify_ReservedCommandsAnyCase(t *testing.T) {
	cases := map[string]Command{
		"exit":    CommandExit,
		"EXIT":    CommandExit,
		"Exit":    CommandExit,
		"history": CommandHistory,
		"HiStOrY": CommandHistory,
		"clear":   CommandClear,
		"CLEAR":   CommandClear,
		" exit ":  CommandExit,
	}
	for input, want := range cases {
		got, _ := Classify(input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestClassify_EmptyInputIsNone(t *testing.T) {
	for _, input := range []string{"", "   ", "\t", "\n"} {
		got, _ := Classify(input)
		assert.Equal(t, CommandNone, got, "input %q", input)
	}
}

func TestClassify_QuestionsPassThrough(t *testing.T) {
	got, text := Classify("  what is the exit status?  ")
	assert.Equal(t, CommandAsk, got)
	assert.Equal(t, "what is the exit status?", text)
}

func TestModel_ReservedCommandsNeverReachService(t *testing.T) {
	chat := &fakeChat{}
	m := New(chat, history.NewBuffer(5))

	for _, line := range []string{"exit", "HISTORY", "Clear", "", "   "} {
		m.input.SetValue(line)
		next, _ := m.handleLine(line)
		m = next.(Model)
	}
	assert.Zero(t, chat.calls)
}

func TestModel_QuestionReachesService(t *testing.T) {
	chat := &fakeChat{}
	m := New(chat, history.NewBuffer(5))

	next, _ := m.handleLine("what is chapter 2 about?")
	m = next.(Model)

	require.Equal(t, 1, chat.calls)
	assert.Equal(t, "what is chapter 2 about?", chat.questions[0])
}

func TestModel_ExitQuits(t *testing.T) {
	m := New(&fakeChat{}, history.NewBuffer(5))
	_, cmd := m.handleLine("exit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ClearEmptiesHistory(t *testing.T) {
	chat := &fakeChat{}
	hist := history.NewBuffer(5)
	m := New(chat, hist)

	next, _ := m.handleLine("some question")
	m = next.(Model)
	require.Equal(t, 1, hist.Len())

	next, _ = m.handleLine("clear")
	m = next.(Model)
	assert.Zero(t, hist.Len())
	assert.Equal(t, history.EmptySentinel, hist.Format())
}

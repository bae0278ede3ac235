package secrets

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrPromptCancelled is returned when the prompt is left with esc or ctrl+c.
var ErrPromptCancelled = errors.New("prompt cancelled")

var promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

// keyPrompt is a masked single-line input.
type keyPrompt struct {
	input     textinput.Model
	value     string
	cancelled bool
}

func newKeyPrompt() keyPrompt {
	ti := textinput.New()
	ti.Placeholder = "sk-..."
	ti.Prompt = "> "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	return keyPrompt{input: ti}
}

func (m keyPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (m keyPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if v := strings.TrimSpace(m.input.Value()); v != "" {
				m.value = v
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m keyPrompt) View() string {
	if m.value != "" || m.cancelled {
		return ""
	}
	return promptTitleStyle.Render("Completion API key") + "\n" + m.input.View() + "\n"
}

// PromptAPIKey asks for the API key on a terminal without echoing it.
func PromptAPIKey(in io.Reader, out io.Writer) (string, error) {
	final, err := tea.NewProgram(newKeyPrompt(), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", err
	}
	m := final.(keyPrompt)
	if m.cancelled {
		return "", ErrPromptCancelled
	}
	return m.value, nil
}

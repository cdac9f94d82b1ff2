package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// startAnswers holds what the interactive start prompt collected.
type startAnswers struct {
	Name    string
	License string
}

type startPromptState int

const (
	statePromptName startPromptState = iota
	statePromptLicense
	statePromptDone
	statePromptCancelled
)

type startPromptModel struct {
	state   startPromptState
	name    textinput.Model
	license textinput.Model
	answers startAnswers
}

var promptTitleStyle = lipgloss.NewStyle().Bold(true)
var promptHintStyle = lipgloss.NewStyle().Faint(true)

func newStartPromptModel(defaultName string) startPromptModel {
	name := textinput.New()
	name.Placeholder = defaultName
	name.Focus()

	license := textinput.New()
	license.Placeholder = "MIT"

	return startPromptModel{
		state:   statePromptName,
		name:    name,
		license: license,
	}
}

func (m startPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m startPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.state = statePromptCancelled
			return m, tea.Quit
		case tea.KeyEnter:
			switch m.state {
			case statePromptName:
				m.answers.Name = orDefault(m.name.Value(), m.name.Placeholder)
				m.state = statePromptLicense
				m.name.Blur()
				return m, m.license.Focus()
			case statePromptLicense:
				m.answers.License = orDefault(m.license.Value(), m.license.Placeholder)
				m.state = statePromptDone
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case statePromptName:
		m.name, cmd = m.name.Update(msg)
	case statePromptLicense:
		m.license, cmd = m.license.Update(msg)
	}
	return m, cmd
}

func (m startPromptModel) View() string {
	switch m.state {
	case statePromptName:
		return fmt.Sprintf("%s\n%s\n%s\n",
			promptTitleStyle.Render("Project name"),
			m.name.View(),
			promptHintStyle.Render("enter to accept, esc to skip"))
	case statePromptLicense:
		return fmt.Sprintf("%s\n%s\n%s\n",
			promptTitleStyle.Render("License"),
			m.license.View(),
			promptHintStyle.Render("enter to accept, esc to skip"))
	default:
		return ""
	}
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// promptStart runs the interactive scaffolding prompt. ok is false when
// the user cancelled; start then proceeds with defaults and no commit.
func promptStart(defaultName string) (startAnswers, bool, error) {
	model, err := tea.NewProgram(newStartPromptModel(defaultName)).Run()
	if err != nil {
		return startAnswers{}, false, fmt.Errorf("start prompt failed: %w", err)
	}
	m := model.(startPromptModel)
	if m.state != statePromptDone {
		return startAnswers{}, false, nil
	}
	return m.answers, true, nil
}

func defaultProjectName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}

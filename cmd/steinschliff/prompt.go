package main

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"steinschliff/internal/vendordir"
)

var errPromptCancelled = errors.New("prompt cancelled")

// promptForm asks the vendor questions one at a time in a single input.
// Each answer starts pre-filled with the question's default, so Enter
// accepts it and ctrl+u clears it.
type promptForm struct {
	questions []vendordir.Question
	input     textinput.Model
	idx       int
	values    map[string]string
	done      bool
}

func newPromptForm(questions []vendordir.Question) promptForm {
	f := promptForm{
		questions: questions,
		input:     textinput.New(),
		values:    make(map[string]string, len(questions)),
	}
	f.input.Prompt = "> "
	f.input.CharLimit = 256
	f.input.Focus()
	f.show()
	return f
}

// show loads the current question's default into the input.
func (f *promptForm) show() {
	if f.idx < len(f.questions) {
		f.input.SetValue(f.questions[f.idx].Default)
		f.input.CursorEnd()
	}
}

func (f promptForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f promptForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.done || f.idx >= len(f.questions) {
		return f, tea.Quit
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return f, tea.Quit
		case tea.KeyEnter:
			f.values[f.questions[f.idx].Key] = strings.TrimSpace(f.input.Value())
			f.idx++
			if f.idx == len(f.questions) {
				f.done = true
				return f, tea.Quit
			}
			f.show()
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f promptForm) View() string {
	if f.done || f.idx >= len(f.questions) {
		return ""
	}
	return fmt.Sprintf("[%d/%d] %s\n%s\n", f.idx+1, len(f.questions), f.questions[f.idx].Prompt, f.input.View())
}

// answers returns the accepted values keyed by Question.Key.
func (f promptForm) answers() map[string]string {
	return maps.Clone(f.values)
}

// promptQuestions runs the form and returns the answers.
func promptQuestions(questions []vendordir.Question) (map[string]string, error) {
	if len(questions) == 0 {
		return map[string]string{}, nil
	}
	result, err := tea.NewProgram(newPromptForm(questions)).Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(promptForm)
	if !ok || !final.done {
		return nil, errPromptCancelled
	}
	return final.answers(), nil
}

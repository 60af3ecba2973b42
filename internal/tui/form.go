package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField is one labeled input in a form, with a per-field error slot
// so a failed submit can mark every violated field at once.
type formField struct {
	label string
	input textinput.Model
	err   string
}

// formModel is a vertical stack of text inputs with a single focused
// field. Tab/down move forward, shift+tab/up move back.
type formModel struct {
	fields []formField
	focus  int
}

func newForm(labels ...string) formModel {
	form := formModel{fields: make([]formField, len(labels))}
	for i, label := range labels {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 256
		form.fields[i] = formField{label: label, input: input}
	}
	if len(form.fields) > 0 {
		form.fields[0].input.Focus()
	}
	return form
}

// masked switches a field to password echo.
func (form formModel) masked(index int) formModel {
	form.fields[index].input.EchoMode = textinput.EchoPassword
	form.fields[index].input.EchoCharacter = '•'
	return form
}

// value returns the trimmed text of the field at index.
func (form formModel) value(index int) string {
	return strings.TrimSpace(form.fields[index].input.Value())
}

// setError attaches an error message to the field with the given label.
func (form *formModel) setError(label, msg string) {
	for i := range form.fields {
		if form.fields[i].label == label {
			form.fields[i].err = msg
			return
		}
	}
}

// clearErrors wipes every field error before re-validation.
func (form *formModel) clearErrors() {
	for i := range form.fields {
		form.fields[i].err = ""
	}
}

// reset clears all inputs and errors and refocuses the first field.
func (form *formModel) reset() {
	for i := range form.fields {
		form.fields[i].input.SetValue("")
		form.fields[i].err = ""
		form.fields[i].input.Blur()
	}
	form.focus = 0
	if len(form.fields) > 0 {
		form.fields[0].input.Focus()
	}
}

// atLastField reports whether focus sits on the final input, where enter
// means submit rather than advance.
func (form formModel) atLastField() bool {
	return form.focus == len(form.fields)-1
}

func (form formModel) advance(delta int) formModel {
	form.fields[form.focus].input.Blur()
	form.focus = (form.focus + delta + len(form.fields)) % len(form.fields)
	form.fields[form.focus].input.Focus()
	return form
}

// Update routes keystrokes: navigation keys move focus, everything else
// goes to the focused input.
func (form formModel) Update(message tea.Msg) (formModel, tea.Cmd) {
	if message, ok := message.(tea.KeyMsg); ok {
		switch message.String() {
		case "tab", "down":
			return form.advance(1), nil
		case "shift+tab", "up":
			return form.advance(-1), nil
		}
	}
	var cmd tea.Cmd
	form.fields[form.focus].input, cmd = form.fields[form.focus].input.Update(message)
	return form, cmd
}

// View renders the labeled inputs with any attached errors.
func (form formModel) View(theme Theme) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(18)
	focusStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Width(18)
	errStyle := lipgloss.NewStyle().Foreground(theme.ErrorText)

	var b strings.Builder
	for i, field := range form.fields {
		style := labelStyle
		if i == form.focus {
			style = focusStyle
		}
		b.WriteString(style.Render(field.label))
		b.WriteString(field.input.View())
		if field.err != "" {
			b.WriteString("  ")
			b.WriteString(errStyle.Render(field.err))
		}
		b.WriteString("\n")
	}
	return b.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/folio/internal/contact"
	"github.com/verte-zerg/folio/internal/theme"
)

const messageHeight = 5

// contactForm holds the input widgets. The flow owns the values; the widgets
// are synced from it after every transition that changes them.
type contactForm struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   contact.Field
	active  bool
}

func newContactForm() *contactForm {
	f := &contactForm{
		name:    newFormInput("Your full name"),
		email:   newFormInput("your.email@example.com"),
		message: textarea.New(),
	}
	f.message.Placeholder = "Write your message here..."
	f.message.ShowLineNumbers = false
	f.message.Prompt = "  "
	f.message.CharLimit = 0
	f.message.SetHeight(messageHeight)
	f.message.Blur()
	return f
}

func newFormInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = "  "
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (f *contactForm) setWidth(width int) {
	w := maxInt(10, width-4)
	f.name.Width = w
	f.email.Width = w
	f.message.SetWidth(w)
}

// Focus activates the form on its current field.
func (f *contactForm) Focus() tea.Cmd {
	f.active = true
	return f.setFocus(f.focus)
}

// Blur leaves the form.
func (f *contactForm) Blur() {
	f.active = false
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
}

func (f *contactForm) move(delta int) tea.Cmd {
	count := len(contact.Fields)
	next := (int(f.focus) + delta + count) % count
	return f.setFocus(contact.Field(next))
}

func (f *contactForm) setFocus(field contact.Field) tea.Cmd {
	f.focus = field
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
	switch field {
	case contact.FieldName:
		return f.name.Focus()
	case contact.FieldEmail:
		return f.email.Focus()
	default:
		return f.message.Focus()
	}
}

// update routes a key to the focused widget and returns the field's new value.
func (f *contactForm) update(msg tea.Msg) (string, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case contact.FieldName:
		f.name, cmd = f.name.Update(msg)
		return f.name.Value(), cmd
	case contact.FieldEmail:
		f.email, cmd = f.email.Update(msg)
		return f.email.Value(), cmd
	default:
		f.message, cmd = f.message.Update(msg)
		return f.message.Value(), cmd
	}
}

// sync copies flow values into the widgets when they differ.
func (f *contactForm) sync(st contact.State) {
	if f.name.Value() != st.Name {
		f.name.SetValue(st.Name)
	}
	if f.email.Value() != st.Email {
		f.email.SetValue(st.Email)
	}
	if f.message.Value() != st.Message {
		f.message.SetValue(st.Message)
	}
}

func (f *contactForm) view(st contact.State, p theme.Palette, spin spinner.Model, width int) string {
	labels := []string{"Full name", "Email", "Message"}
	fields := []string{f.name.View(), f.email.View(), f.message.View()}
	lines := []string{p.Subtitle.Render("Send a message")}
	for i, field := range contact.Fields {
		label := p.Label.Render(labels[i])
		if f.active && f.focus == field {
			label = p.Title.Render("> " + labels[i])
		}
		lines = append(lines, label, fields[i])
	}
	if msg := st.ErrorText(); msg != "" {
		lines = append(lines, p.Error.Render(truncateLine(msg, width)))
	}
	lines = append(lines, renderSubmit(st.Phase, p, spin))
	if !f.active {
		lines = append(lines, p.Faint.Render("press c to write a message"))
	}
	body := strings.Join(lines, "\n")
	return p.Card.Width(maxInt(10, width-2)).Render(body)
}

func renderSubmit(phase contact.Phase, p theme.Palette, spin spinner.Model) string {
	switch phase {
	case contact.PhaseSubmitting:
		return p.ButtonBusy.Render(spin.View() + " Sending...")
	case contact.PhaseSubmitted:
		return lipgloss.JoinVertical(lipgloss.Left,
			p.ButtonDone.Render("✓ Message sent!"),
			p.Success.Render("Thanks, I'll get back to you soon."))
	default:
		return p.Button.Render("Send message (ctrl+s)")
	}
}

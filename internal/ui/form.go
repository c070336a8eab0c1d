package ui

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/folio/internal/contact"
)

// form fields in tab order
const (
	fieldName = iota
	fieldEmail
	fieldMessage
	numFields
)

// contactForm is the contact section's form: two inputs, a message box
// and an inline status line.
type contactForm struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	spinner spinner.Model

	focused bool
	field   int
	sending bool
	status  string
	failed  bool
}

func newContactForm(width int) contactForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	msg := textarea.New()
	msg.Placeholder = "Your message"
	msg.ShowLineNumbers = false
	msg.CharLimit = 4000
	msg.SetHeight(4)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	f := contactForm{name: name, email: email, message: msg, spinner: s}
	f.setWidth(width)
	return f
}

func (f *contactForm) setWidth(w int) {
	w = max(w-4, 10)
	f.name.Width = w
	f.email.Width = w
	f.message.SetWidth(w)
}

// focus enters the form at the current field.
func (f *contactForm) focus() tea.Cmd {
	f.focused = true
	return f.focusField(f.field)
}

func (f *contactForm) blur() {
	f.focused = false
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
}

func (f *contactForm) focusField(i int) tea.Cmd {
	f.field = (i + numFields) % numFields
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
	switch f.field {
	case fieldName:
		return f.name.Focus()
	case fieldEmail:
		return f.email.Focus()
	default:
		return f.message.Focus()
	}
}

func (f contactForm) value() contact.Message {
	return contact.Message{
		Name:    f.name.Value(),
		Email:   f.email.Value(),
		Message: f.message.Value(),
	}
}

func (f *contactForm) reset() {
	f.name.Reset()
	f.email.Reset()
	f.message.Reset()
	f.field = fieldName
}

// update handles a key while the form has focus. submit is true when the
// message should be sent.
func (f *contactForm) update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	switch msg.String() {
	case "tab":
		return f.focusField(f.field + 1), false
	case "shift+tab":
		return f.focusField(f.field - 1), false
	case "ctrl+s":
		return nil, true
	case "enter":
		if f.field != fieldMessage {
			return f.focusField(f.field + 1), false
		}
	}
	return f.passthrough(msg), false
}

// passthrough hands a non-key message to the focused field.
func (f *contactForm) passthrough(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.field {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldEmail:
		f.email, cmd = f.email.Update(msg)
	default:
		f.message, cmd = f.message.Update(msg)
	}
	return cmd
}

// submit validates locally and returns the send command.
func (f *contactForm) submit(c *contact.Client) tea.Cmd {
	if f.sending {
		return nil
	}
	m := f.value()
	if err := m.Validate(); err != nil {
		f.status, f.failed = "All fields are required", true
		return nil
	}
	f.sending = true
	f.status, f.failed = "", false
	return tea.Batch(f.spinner.Tick, sendCmd(c, m))
}

func sendCmd(c *contact.Client, m contact.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), contact.DefaultTimeout)
		defer cancel()
		reply, err := c.Send(ctx, m)
		return sentMsg{reply: reply, err: err}
	}
}

// finish records the relay's answer.
func (f *contactForm) finish(msg sentMsg) {
	f.sending = false
	if msg.err == nil {
		f.status, f.failed = msg.reply, false
		if f.status == "" {
			f.status = "Message sent!"
		}
		f.reset()
		return
	}
	log.Printf("contact: %v", msg.err)
	f.failed = true
	var re *contact.RelayError
	switch {
	case errors.As(msg.err, &re):
		f.status = re.Message
	case errors.Is(msg.err, contact.ErrMissingFields):
		f.status = "All fields are required"
	default:
		f.status = "Failed to send message"
	}
}

// view renders the form. pulse in [0,1] brightens the border with the
// breathing cycle.
func (f contactForm) view(width int, accent string, pulse float64) string {
	label := func(s string, i int) string {
		st := bodyStyle
		if f.focused && f.field == i {
			st = st.Foreground(lipgloss.Color(accent)).Bold(true)
		}
		return st.Render(s)
	}
	var b strings.Builder
	b.WriteString(label("Name", fieldName) + "\n" + f.name.View() + "\n")
	b.WriteString(label("Email", fieldEmail) + "\n" + f.email.View() + "\n")
	b.WriteString(label("Message", fieldMessage) + "\n" + f.message.View())

	border := lerpColor(backdrop, parseHex(accent), 0.35+0.65*pulse)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.color()).
		Padding(0, 1).
		Width(max(width-2, 12)).
		Render(b.String())

	status := ""
	switch {
	case f.sending:
		status = f.spinner.View() + statusStyle.Render(" Sending...")
	case f.status != "" && f.failed:
		status = errorStyle.Render(f.status)
	case f.status != "":
		status = statusStyle.Render(f.status)
	}
	return box + "\n" + status
}

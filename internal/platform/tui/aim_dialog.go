package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
)

const (
	aimFieldAngle = iota
	aimFieldVelocity
	aimFieldCount
)

// AimDialog lets the current player type an exact angle and velocity.
type AimDialog struct {
	title     string
	inputs    [aimFieldCount]textinput.Model
	focus     int
	err       string
	submitted bool
	cancelled bool
	aim       engine.Aim
}

// NewAimDialog creates a dialog prefilled with the given aim.
func NewAimDialog(title string, aim engine.Aim) AimDialog {
	d := AimDialog{title: title, aim: aim}

	labels := [aimFieldCount]string{"Angle    ", "Velocity "}
	values := [aimFieldCount]float64{aim.Angle, aim.Velocity}
	for i := range d.inputs {
		ti := textinput.New()
		ti.Prompt = labels[i]
		ti.CharLimit = 12
		ti.Width = 12
		ti.SetValue(strconv.FormatFloat(values[i], 'f', -1, 64))
		d.inputs[i] = ti
	}
	d.inputs[aimFieldAngle].Focus()

	return d
}

// Init starts the cursor blinking.
func (d AimDialog) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles navigation and editing. Enter on the last field submits.
func (d AimDialog) Update(msg tea.Msg) (AimDialog, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+c":
			d.cancelled = true
			return d, nil
		case "tab", "down":
			return d.setFocus((d.focus + 1) % aimFieldCount)
		case "shift+tab", "up":
			return d.setFocus((d.focus + aimFieldCount - 1) % aimFieldCount)
		case "enter":
			if d.focus < aimFieldCount-1 {
				return d.setFocus(d.focus + 1)
			}
			d.submit()
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	d.err = ""
	return d, cmd
}

func (d AimDialog) setFocus(i int) (AimDialog, tea.Cmd) {
	d.inputs[d.focus].Blur()
	d.focus = i
	return d, d.inputs[d.focus].Focus()
}

// submit parses both fields and marks the dialog done when they are valid.
func (d *AimDialog) submit() {
	angle, err := parseAimField("angle", d.inputs[aimFieldAngle].Value())
	if err != nil {
		d.err = err.Error()
		return
	}
	velocity, err := parseAimField("velocity", d.inputs[aimFieldVelocity].Value())
	if err != nil {
		d.err = err.Error()
		return
	}
	d.aim = engine.Aim{Angle: angle, Velocity: velocity}
	d.submitted = true
}

func parseAimField(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

// Reject reopens a submitted dialog with an error, e.g. when the game
// refuses the aim.
func (d *AimDialog) Reject(err error) {
	d.submitted = false
	d.err = err.Error()
}

// Submitted reports whether the player confirmed a parsable aim.
func (d AimDialog) Submitted() bool { return d.submitted }

// Cancelled reports whether the player closed the dialog.
func (d AimDialog) Cancelled() bool { return d.cancelled }

// Aim returns the submitted aim.
func (d AimDialog) Aim() engine.Aim { return d.aim }

// Err returns the current validation message, or "".
func (d AimDialog) Err() string { return d.err }

// View renders the dialog as a bordered box.
func (d AimDialog) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title))
	b.WriteString("\n\n")
	for i := range d.inputs {
		b.WriteString(d.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if d.err != "" {
		b.WriteString(errStyle.Render(d.err))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter: next/fire  tab: switch  esc: cancel"))

	return boxStyle.Render(b.String())
}

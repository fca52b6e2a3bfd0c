package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field order in the add-spot form
const (
	fieldName = iota
	fieldLocation
	fieldFacing
	fieldCount
)

// addSpotForm collects the inputs needed to create a spot: a name, a
// location query (place name or literal "lat,lon") and the azimuth the
// beach faces.
type addSpotForm struct {
	inputs  []textinput.Model
	focused int
	err     error
}

// newAddSpotForm builds the form with the name field focused
func newAddSpotForm() addSpotForm {
	inputs := make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Placeholder = "Ribeira d'Ilhas"
	name.CharLimit = 60
	name.Width = 44
	name.Focus()
	inputs[fieldName] = name

	location := textinput.New()
	location.Placeholder = "Ericeira, Portugal or 38.99,-9.42"
	location.CharLimit = 100
	location.Width = 44
	inputs[fieldLocation] = location

	facing := textinput.New()
	facing.Placeholder = "290 (degrees the beach faces, 0 = north)"
	facing.CharLimit = 6
	facing.Width = 44
	inputs[fieldFacing] = facing

	return addSpotForm{inputs: inputs}
}

// focusField moves focus to one field and blurs the rest
func (f *addSpotForm) focusField(ix int) {
	f.focused = ix
	for i := range f.inputs {
		if i == ix {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *addSpotForm) next() {
	f.focusField((f.focused + 1) % fieldCount)
}

func (f *addSpotForm) prev() {
	f.focusField((f.focused + fieldCount - 1) % fieldCount)
}

// values validates the form and returns the parsed fields
func (f *addSpotForm) values() (name, location string, facingDeg float64, err error) {
	name = strings.TrimSpace(f.inputs[fieldName].Value())
	location = strings.TrimSpace(f.inputs[fieldLocation].Value())

	if name == "" {
		return "", "", 0, fmt.Errorf("spot name is required")
	}
	if location == "" {
		return "", "", 0, fmt.Errorf("location is required")
	}

	facingDeg, err = strconv.ParseFloat(strings.TrimSpace(f.inputs[fieldFacing].Value()), 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("facing must be a number of degrees")
	}
	if facingDeg < 0 || facingDeg >= 360 {
		return "", "", 0, fmt.Errorf("facing %.0f outside [0,360)", facingDeg)
	}

	return name, location, facingDeg, nil
}

// update forwards a message to the focused input
func (f addSpotForm) update(msg tea.Msg) (addSpotForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

// view renders the stacked form fields with the focused label highlighted
func (f addSpotForm) view() string {
	labels := []string{"Name", "Location", "Facing"}

	var rows []string
	for i, input := range f.inputs {
		label := labelStyle.Render(labels[i])
		if i == f.focused {
			label = titleStyle.Render(labels[i])
		}
		rows = append(rows, label, input.View(), "")
	}

	if f.err != nil {
		rows = append(rows, errorTextStyle.Render("✗ "+f.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

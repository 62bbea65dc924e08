// Package loadform implements the edit form for a load's broker fields.
package loadform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// SubmittedMsg is dispatched when the user submits the edit form.
type SubmittedMsg struct {
	LoadID string
	Edit   model.LoadEdit
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	brokerName       string
	brokerLoadNumber string
	loadType         string
	rate             string
	temperature      string
}

// Model is the Bubble Tea model for the load edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	loadID string
	width  int
	height int
}

// New creates a new load form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form with the load's current field values.
func (m *Model) Start(ld model.Load) tea.Cmd {
	m.loadID = ld.LoadID
	m.fb.brokerName = ld.BrokerName
	m.fb.brokerLoadNumber = ld.BrokerLoadNumber
	m.fb.loadType = ld.LoadType
	m.fb.rate = ""
	if ld.Rate > 0 {
		m.fb.rate = strconv.FormatFloat(ld.Rate, 'f', 2, 64)
	}
	m.fb.temperature = ld.Temperature
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the load form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the load form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Edit Load "+m.loadID) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Broker").
				Placeholder("Broker name").
				Value(&m.fb.brokerName).
				Validate(validateRequired("Broker")),
			huh.NewInput().
				Title("Broker load number").
				Placeholder("Broker's reference (optional)").
				Value(&m.fb.brokerLoadNumber),
			huh.NewInput().
				Title("Load type").
				Placeholder("reefer, dry van, flatbed...").
				Value(&m.fb.loadType),
			huh.NewInput().
				Title("Rate").
				Placeholder("0.00").
				Value(&m.fb.rate).
				Validate(validateOptionalRate),
			huh.NewInput().
				Title("Temperature").
				Placeholder("e.g. -10F (optional)").
				Value(&m.fb.temperature),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	edit := model.LoadEdit{
		BrokerName:       strings.TrimSpace(m.fb.brokerName),
		BrokerLoadNumber: strings.TrimSpace(m.fb.brokerLoadNumber),
		LoadType:         strings.TrimSpace(m.fb.loadType),
		Temperature:      strings.TrimSpace(m.fb.temperature),
	}
	if rate := strings.TrimSpace(m.fb.rate); rate != "" {
		// Validation already guaranteed this parses.
		edit.Rate, _ = strconv.ParseFloat(rate, 64)
	}

	loadID := m.loadID
	return func() tea.Msg {
		return SubmittedMsg{LoadID: loadID, Edit: edit}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// validateRequired returns a validator that rejects empty input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateOptionalRate accepts an empty string or a non-negative number.
func validateOptionalRate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("rate must be a number")
	}
	if v < 0 {
		return fmt.Errorf("rate cannot be negative")
	}
	return nil
}

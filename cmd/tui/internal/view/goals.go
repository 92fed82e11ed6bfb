package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pondo-ph/pondo/internal/goal"
)

type goalState int

const (
	goalStateBrowse goalState = iota
	goalStateAdd
)

type GoalsModel struct {
	CommonModel
	goalService *goal.Service
	userID      uuid.UUID

	state goalState
	table table.Model
	goals []*goal.Goal
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formTarget   string
	formPriority string
}

func NewGoalsModel(goalSvc *goal.Service, userID uuid.UUID) GoalsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Target", Width: 14},
		{Title: "Saved", Width: 14},
		{Title: "Priority", Width: 8},
		{Title: "Progress", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return GoalsModel{
		goalService: goalSvc,
		userID:      userID,
		table:       t,
	}
}

func (m GoalsModel) Title() string { return "Savings Goals" }
func (m GoalsModel) ShortHelp() string {
	if m.state == goalStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | d: distribute surplus | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.goals = msg.goals
		m.refreshTable()
		return m, nil

	case goalSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Goal created."
		}
		m.state = goalStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case distributeMsg:
		m.status = msg.summary
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case goalStateBrowse:
		return m.updateBrowse(msg)
	case goalStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m GoalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "d":
			m.status = "Distributing surplus..."
			return m, m.distributeCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m GoalsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formTarget = ""
	m.formPriority = "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Placeholder("e.g. Emergency Fund").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("target").
				Title("Target Amount").
				Placeholder("e.g. 50000").
				Value(&m.formTarget).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("enter a valid amount")
					}
					if !d.IsPositive() {
						return fmt.Errorf("target must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("priority").
				Title("Priority").
				Placeholder("0 = excluded from distribution").
				Value(&m.formPriority).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("priority must be a non-negative integer")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = goalStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m GoalsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = goalStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m GoalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == goalStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Goal\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *GoalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.goals))
	for _, g := range m.goals {
		progress := "0%"
		if g.TargetAmount > 0 {
			progress = fmt.Sprintf("%d%%", g.CurrentAmount*100/g.TargetAmount)
		}
		rows = append(rows, table.Row{
			g.Name,
			FormatAmount(g.TargetAmount),
			FormatAmount(g.CurrentAmount),
			strconv.Itoa(g.Priority),
			progress,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type goalLoadMsg struct {
	goals []*goal.Goal
	err   error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := m.goalService.List(ctx, m.userID)
		return goalLoadMsg{goals: goals, err: err}
	}
}

type goalSaveMsg struct {
	err error
}

func (m GoalsModel) saveCmd() tea.Cmd {
	target, err := decimal.NewFromString(strings.TrimSpace(m.formTarget))
	if err != nil {
		return func() tea.Msg { return goalSaveMsg{err: err} }
	}

	priority, err := strconv.Atoi(strings.TrimSpace(m.formPriority))
	if err != nil {
		return func() tea.Msg { return goalSaveMsg{err: err} }
	}

	params := goal.CreateParams{
		UserID:       m.userID,
		Name:         m.formName,
		TargetAmount: target.Shift(2).Round(0).IntPart(),
		Priority:     priority,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.goalService.Create(ctx, params)
		return goalSaveMsg{err: err}
	}
}

type distributeMsg struct {
	summary string
}

func (m GoalsModel) distributeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		dist, err := m.goalService.DistributeSurplus(ctx, m.userID)
		switch {
		case errors.Is(err, goal.ErrNothingToDistribute):
			return distributeMsg{summary: "Nothing to distribute: balance is not positive."}
		case errors.Is(err, goal.ErrNoWeightedGoals):
			return distributeMsg{summary: "No weighted goals to distribute to."}
		case err != nil:
			return distributeMsg{summary: fmt.Sprintf("Distribution failed: %v", err)}
		}

		return distributeMsg{summary: fmt.Sprintf(
			"Distributed %s across %d goal(s).", FormatAmount(dist.Total), len(dist.Allocations),
		)}
	}
}

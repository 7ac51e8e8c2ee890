package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wangdage1949/WIF500-Lottery/models"
)

type confirmModel struct {
	prior      *models.Progress
	resume     bool
	decided    bool
	quitByUser bool
}

func newConfirmModel(prior *models.Progress) confirmModel {
	return confirmModel{prior: prior}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.resume = true
		m.decided = true
		return m, tea.Quit
	case "n", "N":
		m.resume = false
		m.decided = true
		return m, tea.Quit
	case "ctrl+c", "q":
		m.quitByUser = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.decided || m.quitByUser {
		return ""
	}

	saved := time.Unix(int64(m.prior.Timestamp), 0).Format("2006-01-02 15:04:05")
	content := titleStyle.Render("Progress file found") + "\n\n"
	content += fmt.Sprintf("  examined : %s of %s\n", m.prior.TestedCount, m.prior.TotalCandidates)
	content += fmt.Sprintf("  found    : %d\n", len(m.prior.FoundWIFs))
	content += fmt.Sprintf("  saved    : %s\n\n", saved)
	content += "Resume from this point? "
	content += helpStyle.Render("y yes    n start over    q quit")
	return appStyle.Render(content)
}

package tui

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wangdage1949/WIF500-Lottery/internal/scanner"
	"github.com/wangdage1949/WIF500-Lottery/models"
)

type scanModel struct {
	cancel context.CancelFunc
	events <-chan scanner.Event

	templateWIF string
	total       *big.Int

	bar  progress.Model
	spin spinner.Model

	examined     *big.Int
	percent      float64
	rate         float64
	eta          time.Duration
	matches      []models.FoundWIF
	interrupting bool

	done   *scanner.DoneEvent
	idx    int
	status string
}

func newScanModel(cancel context.CancelFunc, events <-chan scanner.Event, total *big.Int, templateWIF string) scanModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return scanModel{
		cancel:      cancel,
		events:      events,
		templateWIF: templateWIF,
		total:       total,
		bar:         progress.New(progress.WithDefaultGradient()),
		spin:        s,
		examined:    new(big.Int),
	}
}

// waitForEvent blocks on the driver's event channel and converts whatever
// arrives into a tea message. Channel close means the driver has returned.
func (m scanModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func (m scanModel) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.spin.Tick)
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		switch ev := msg.event.(type) {
		case scanner.ProgressEvent:
			m.examined = ev.Examined
			m.percent = ev.Percent
			m.rate = ev.Rate
			m.eta = ev.ETA
		case scanner.MatchEvent:
			m.matches = append(m.matches, ev.Match)
		case scanner.DoneEvent:
			done := ev
			m.done = &done
			m.examined = ev.Examined
		}
		return m, m.waitForEvent()

	case eventsClosedMsg:
		if m.done != nil {
			return m, nil
		}
		return m, tea.Quit

	case copiedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("copy failed: %v", msg.err))
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.done != nil {
		return m.updateDone(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		if !m.interrupting {
			m.interrupting = true
			m.cancel()
		}
	}
	return m, nil
}

func (m scanModel) updateDone(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	found := m.done.Found
	switch keyMsg.String() {
	case "ctrl+c", "q", "enter", "esc":
		return m, tea.Quit
	case "up":
		if m.idx > 0 {
			m.idx--
		}
	case "down":
		if m.idx < len(found)-1 {
			m.idx++
		}
	case "c":
		if m.idx < len(found) {
			text := found[m.idx].PrivateHex
			return m, func() tea.Msg {
				return copiedMsg{err: clipboard.WriteAll(text)}
			}
		}
	}
	return m, nil
}

func (m scanModel) View() string {
	if m.done != nil {
		return m.viewDone()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("WIF recovery") + "\n")
	b.WriteString(helpStyle.Render("template "+m.templateWIF) + "\n\n")

	b.WriteString(m.spin.View() + " " + m.bar.ViewAs(m.percent) + "\n\n")
	b.WriteString(fmt.Sprintf("%6.2f%%  %s / %s  %s/s  remaining %s\n",
		m.percent*100, groupDigits(m.examined), groupDigits(m.total),
		groupDigits(big.NewInt(int64(m.rate))), formatETA(m.eta)))

	for _, match := range m.matches {
		b.WriteString("\n" + matchStyle.Render("✓ "+match.WIF))
	}
	if m.interrupting {
		b.WriteString("\n" + errorStyle.Render("interrupting, saving progress..."))
	} else {
		b.WriteString("\n" + helpStyle.Render("q interrupt and save"))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	return appStyle.Render(b.String())
}

func (m scanModel) viewDone() string {
	var b strings.Builder

	switch m.done.State {
	case scanner.StateCompleted:
		b.WriteString(titleStyle.Render("Scan completed") + "\n")
	case scanner.StateInterrupted:
		b.WriteString(titleStyle.Render("Scan interrupted, progress saved") + "\n")
	default:
		b.WriteString(errorStyle.Render("Scan aborted") + "\n")
		if m.done.Err != nil {
			b.WriteString(m.done.Err.Error() + "\n")
		}
	}

	b.WriteString(fmt.Sprintf("examined %s of %s\n\n", groupDigits(m.done.Examined), groupDigits(m.done.Total)))

	if len(m.done.Found) == 0 {
		b.WriteString("no valid WIF found\n")
	} else {
		b.WriteString(fmt.Sprintf("found %d valid WIF(s):\n", len(m.done.Found)))
		for i, f := range m.done.Found {
			line := fmt.Sprintf("%d. %s  key %s  compressed %v", i+1, f.WIF, f.PrivateHex, f.Compressed)
			if i == m.idx {
				line = cursorStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("↑/↓ select    c copy private key    q quit"))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	return appStyle.Render(b.String())
}

// groupDigits renders a big integer with thousands separators.
func groupDigits(n *big.Int) string {
	s := n.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatETA renders a duration the way the progress line reports it:
// seconds below a minute, minutes below an hour, hours above.
func formatETA(d time.Duration) string {
	sec := d.Seconds()
	switch {
	case sec <= 0:
		return "…"
	case sec < 60:
		return fmt.Sprintf("%.1fs", sec)
	case sec < 3600:
		return fmt.Sprintf("%.1fm", sec/60)
	default:
		return fmt.Sprintf("%.1fh", sec/3600)
	}
}

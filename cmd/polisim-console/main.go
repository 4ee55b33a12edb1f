// Command polisim-console is an interactive control panel for a running
// simulation session: it displays the live phase, speed, and pause state and
// mutates them through the engine's command queue.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polity-sim/coordinator/core/phase"
	"github.com/polity-sim/coordinator/session"
	"github.com/polity-sim/coordinator/sim"
)

const maxLogEntries = 100

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	stylePaused = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	stylePanel  = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

// eventLog collects notification lines from the dispatcher goroutine for the
// UI refresh tick to read.
type eventLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *eventLog) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), line))
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

func (l *eventLog) tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return append([]string(nil), l.entries[len(l.entries)-n:]...)
}

type tickMsg time.Time

func refresh() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	engine *sim.Engine
	log    *eventLog
	cancel context.CancelFunc
	width  int
	height int
}

func (m model) Init() tea.Cmd {
	return refresh()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		return m, refresh()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "1", "2", "3", "4":
		target := phase.Values()[int(msg.String()[0]-'1')]
		m.engine.Do(func(ctx context.Context, s *session.State) {
			s.SetPhase(ctx, target)
		})
	case "+", "=":
		m.engine.Do(func(ctx context.Context, s *session.State) {
			s.SetSpeed(ctx, s.Speed()+0.5)
		})
	case "-":
		m.engine.Do(func(ctx context.Context, s *session.State) {
			s.SetSpeed(ctx, s.Speed()-0.5)
		})
	case " ":
		m.engine.Do(func(ctx context.Context, s *session.State) {
			s.TogglePause(ctx)
		})
	}
	return m, nil
}

func (m model) View() string {
	s := m.engine.State()

	pauseStr := styleValue.Render("running")
	if s.Paused() {
		pauseStr = stylePaused.Render("PAUSED")
	}

	status := lipgloss.JoinHorizontal(lipgloss.Top,
		styleLabel.Render("phase "), styleValue.Render(s.Phase().String()),
		styleLabel.Render("   speed "), styleValue.Render(fmt.Sprintf("%.2fx", s.Speed())),
		styleLabel.Render("   scale "), styleValue.Render(fmt.Sprintf("%.2f", m.engine.Scale().Value())),
		styleLabel.Render("   "), pauseStr,
	)

	logLines := m.log.tail(m.logHeight())
	logView := styleDim.Render("no notifications yet")
	if len(logLines) > 0 {
		logView = ""
		for i, line := range logLines {
			if i > 0 {
				logView += "\n"
			}
			logView += line
		}
	}

	help := styleDim.Render("1-4: phase   +/-: speed   space: pause   q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render("polisim console"),
		stylePanel.Render(status),
		stylePanel.Render(logView),
		help,
	)
}

func (m model) logHeight() int {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func main() {
	configFile := flag.String("config", "", "Path to engine config file (JSON or YAML)")
	flag.Parse()

	cfg := sim.DefaultConfig()
	cfg.Observer = "noop" // the console renders its own event log
	if *configFile != "" {
		loaded, err := sim.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
		cfg.Observer = "noop"
	}
	cfg.TickBudget = 0

	engine, err := sim.New(&cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	logView := &eventLog{}
	d := engine.State().Dispatcher()
	d.Subscribe(session.PhaseChanged, func(payload any) {
		logView.add(fmt.Sprintf("phase → %s", payload.(phase.Phase)))
	})
	d.Subscribe(session.SpeedChanged, func(payload any) {
		logView.add(fmt.Sprintf("speed → %.2fx", payload.(float64)))
	})
	d.Subscribe(session.PauseChanged, func(payload any) {
		if payload.(bool) {
			logView.add("paused")
		} else {
			logView.add("resumed")
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go engine.Run(ctx)

	p := tea.NewProgram(model{engine: engine, log: logView, cancel: cancel}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

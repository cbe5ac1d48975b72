package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dsharma/cogniflow/internal/api"
	"github.com/dsharma/cogniflow/internal/metrics"
)

// Config wires the dashboard to its collaborators.
type Config struct {
	Client  *api.Client
	Metrics *metrics.Store
}

type metricsUpdateMsg struct {
	dashboard metrics.Dashboard
}

type model struct {
	client *api.Client
	store  *metrics.Store

	metricsCh   chan metrics.Dashboard
	unsubscribe func()

	active   tab
	composer textinput.Model
	stream   viewport.Model
	spinner  spinner.Model

	exchanges   []chatExchange
	streamDirty bool

	chatMode api.ChatMode
	style    api.ResponseStyle
	provider api.Provider

	analysis      analysisState
	analysisInput string
	analysisErr   string
	result        *api.AnalysisResult

	dashboard metrics.Dashboard
	stats     api.IndexStats
	statsErr  string

	errorMessage string
	infoMessage  string

	jobs        *jobBus
	runningJobs int

	width  int
	height int
}

// New builds the dashboard model.
func New(cfg Config) tea.Model {
	composer := textinput.New()
	composer.Placeholder = composerChatPlaceholder
	composer.Prompt = "> "
	composer.CharLimit = 0
	composer.Focus()

	stream := viewport.New(80, 16)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	metricsCh := make(chan metrics.Dashboard, 8)
	m := &model{
		client:    cfg.Client,
		store:     cfg.Metrics,
		metricsCh: metricsCh,
		composer:  composer,
		stream:    stream,
		spinner:   spin,
		chatMode:  api.ModeGeneral,
		style:     api.StyleStrict,
		provider:  api.ProviderLocal,
		jobs:      newJobBus(),
	}
	if cfg.Metrics != nil {
		m.dashboard = cfg.Metrics.Read()
		m.unsubscribe = cfg.Metrics.Subscribe(func(d metrics.Dashboard) {
			select {
			case metricsCh <- d:
			default:
			}
		})
	}
	return m
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick, m.jobs.Start(jobKindStats, fetchStatsJob(m.client))}
	if m.store != nil {
		cmds = append(cmds, waitForMetrics(m.metricsCh))
	}
	return tea.Batch(cmds...)
}

// waitForMetrics bridges the store's subscription into the update loop and
// re-arms itself after every delivery.
func waitForMetrics(ch chan metrics.Dashboard) tea.Cmd {
	return func() tea.Msg {
		return metricsUpdateMsg{dashboard: <-ch}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case metricsUpdateMsg:
		m.dashboard = msg.dashboard
		return m, waitForMetrics(m.metricsCh)
	case jobSignalMsg:
		m.runningJobs++
		return m, nil
	case jobResultEnvelope:
		if m.runningJobs > 0 {
			m.runningJobs--
		}
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case chatResultMsg:
		m.applyChatResult(msg)
		return m, nil
	case analysisResultMsg:
		m.applyAnalysisResult(msg)
		return m, nil
	case statsResultMsg:
		if msg.err != nil {
			m.statsErr = msg.err.Error()
		} else {
			m.stats = msg.stats
			m.statsErr = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		return m, tea.Quit
	case "tab":
		m.switchTab((m.active + 1) % tab(len(tabNames)))
		return m, nil
	case "shift+tab":
		m.switchTab((m.active + tab(len(tabNames)) - 1) % tab(len(tabNames)))
		return m, nil
	case "ctrl+r":
		if m.chatMode == api.ModeGeneral {
			m.chatMode = api.ModeContextual
		} else {
			m.chatMode = api.ModeGeneral
		}
		return m, nil
	case "ctrl+s":
		if m.style == api.StyleStrict {
			m.style = api.StyleSolve
		} else {
			m.style = api.StyleStrict
		}
		return m, nil
	case "ctrl+p":
		if m.provider == api.ProviderLocal {
			m.provider = api.ProviderExternal
		} else {
			m.provider = api.ProviderLocal
		}
		return m, nil
	case "enter":
		return m.submit()
	case "up", "down", "pgup", "pgdown":
		if m.active == tabChat {
			var cmd tea.Cmd
			m.refreshStreamIfDirty()
			m.stream, cmd = m.stream.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m *model) switchTab(next tab) {
	m.active = next
	m.errorMessage = ""
	m.infoMessage = ""
	switch next {
	case tabChat:
		m.composer.Placeholder = composerChatPlaceholder
		m.composer.Focus()
	case tabAnalyze:
		m.composer.Placeholder = composerAnalyzePlaceholder
		m.composer.Focus()
	case tabMetrics:
		m.composer.Blur()
	}
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.composer.Value())
	switch m.active {
	case tabChat:
		if value == "" {
			return m, nil
		}
		m.composer.Reset()
		return m, m.startChat(value)
	case tabAnalyze:
		if value == "" {
			return m, nil
		}
		m.composer.Reset()
		return m, m.startAnalysis(value)
	case tabMetrics:
		return m, m.jobs.Start(jobKindStats, fetchStatsJob(m.client))
	}
	return m, nil
}

func (m *model) startChat(text string) tea.Cmd {
	exchange := chatExchange{
		ID:      uuid.NewString(),
		Prompt:  text,
		Pending: true,
		SentAt:  time.Now(),
	}
	m.exchanges = append(m.exchanges, exchange)
	if len(m.exchanges) > transcriptLimit {
		m.exchanges = m.exchanges[len(m.exchanges)-transcriptLimit:]
	}
	m.streamDirty = true
	m.errorMessage = ""
	m.infoMessage = "Waiting for the assistant…"

	req := api.ChatRequest{
		Text:       text,
		Mode:       m.chatMode,
		Style:      m.style,
		Provider:   m.provider,
		Credential: credentialFromEnv(m.provider),
	}
	return m.jobs.Start(jobKindChat, sendChatJob(m.client, exchange.ID, req))
}

func (m *model) startAnalysis(input string) tea.Cmd {
	m.analysis = analysisRunning
	m.analysisInput = input
	m.analysisErr = ""
	m.errorMessage = ""
	m.infoMessage = ""
	return m.jobs.Start(jobKindAnalyze, analyzeJob(m.client, input))
}

func (m *model) applyChatResult(msg chatResultMsg) {
	for i := range m.exchanges {
		if m.exchanges[i].ID != msg.exchangeID {
			continue
		}
		m.exchanges[i].Pending = false
		if msg.err != nil {
			m.exchanges[i].Failed = true
			m.exchanges[i].Reply = chatFailureReply
			m.errorMessage = msg.err.Error()
		} else {
			m.exchanges[i].Reply = msg.reply
		}
		break
	}
	m.streamDirty = true
	m.infoMessage = ""
}

func (m *model) applyAnalysisResult(msg analysisResultMsg) {
	// Last response wins: a stale in-flight result for an older input simply
	// overwrites state in arrival order, matching the no-cancellation model.
	if msg.err != nil {
		m.analysis = analysisFailed
		m.analysisErr = msg.err.Error()
		m.result = nil
		return
	}
	result := msg.result
	m.analysis = analysisDone
	m.analysisErr = ""
	m.result = &result
}

func (m *model) resize() {
	inner := m.width - contentHorizontalPadding
	if inner < minContentWidth {
		inner = minContentWidth
	}
	m.stream.Width = inner
	height := m.height - 12
	if height < 6 {
		height = 6
	}
	m.stream.Height = height
	m.composer.Width = inner - 4
	m.streamDirty = true
}

func (m *model) wrapWidth() int {
	inner := m.width - contentHorizontalPadding
	if inner < minContentWidth {
		inner = minContentWidth
	}
	return inner
}

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	activeTabStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205")).Padding(0, 1)
	inactiveTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	promptStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	replyFailedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	metricValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120"))
)

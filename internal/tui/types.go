package tui

import "time"

type tab int

const (
	tabChat tab = iota
	tabAnalyze
	tabMetrics
)

var tabNames = []string{"Chat", "Analyze", "Metrics"}

type analysisState int

const (
	analysisIdle analysisState = iota
	analysisRunning
	analysisFailed
	analysisDone
)

// chatExchange is one question/answer pair in the transcript.
type chatExchange struct {
	ID      string
	Prompt  string
	Reply   string
	Failed  bool
	Pending bool
	SentAt  time.Time
}

const heroTagline = "CogniFlow — chat with your assistant, analyze your content."

// chatFailureReply replaces raw backend errors in the transcript; the real
// error goes to the status line instead.
const chatFailureReply = "Sorry, I couldn't process that right now. Please try again."

const (
	composerChatPlaceholder    = "Type a message… (Ctrl+R toggles contextual mode)"
	composerAnalyzePlaceholder = "Path to a video/script/PDF, or a YouTube URL…"
)

const (
	minContentWidth          = 40
	contentHorizontalPadding = 4
	transcriptLimit          = 200
)

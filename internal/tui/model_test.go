package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dsharma/cogniflow/internal/api"
	"github.com/dsharma/cogniflow/internal/metrics"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	store := metrics.NewStore(metrics.NewMemoryPersistence())
	m, ok := New(Config{
		Client:  api.New(api.Config{BaseURL: "http://127.0.0.1:1", Usage: store}),
		Metrics: store,
	}).(*model)
	if !ok {
		t.Fatal("New did not return *model")
	}
	return m
}

func TestChatFailureRendersPlaceholderReply(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.startChat("hello")
	if len(m.exchanges) != 1 || !m.exchanges[0].Pending {
		t.Fatalf("expected one pending exchange, got %#v", m.exchanges)
	}

	m.Update(chatResultMsg{
		exchangeID: m.exchanges[0].ID,
		err:        errors.New("connection refused"),
	})

	exchange := m.exchanges[0]
	if exchange.Pending {
		t.Fatal("exchange still pending after result")
	}
	if !exchange.Failed || exchange.Reply != chatFailureReply {
		t.Fatalf("expected friendly placeholder reply, got %#v", exchange)
	}
	if !strings.Contains(m.errorMessage, "connection refused") {
		t.Fatalf("raw error should land in the status line, got %q", m.errorMessage)
	}
}

func TestChatSuccessKeepsReplyVerbatim(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.startChat("hello")
	m.Update(chatResultMsg{exchangeID: m.exchanges[0].ID, reply: "hi there"})

	if m.exchanges[0].Reply != "hi there" || m.exchanges[0].Failed {
		t.Fatalf("unexpected exchange %#v", m.exchanges[0])
	}
}

func TestAnalysisFailureIsDistinctFromNoResult(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	idleView := m.viewAnalyze()
	if !strings.Contains(idleView, "No analysis yet") {
		t.Fatalf("idle view missing empty-state text: %q", idleView)
	}

	m.startAnalysis("clip.mp4")
	m.Update(analysisResultMsg{input: "clip.mp4", err: errors.New("pipeline crashed")})

	if m.analysis != analysisFailed {
		t.Fatalf("state = %v, want analysisFailed", m.analysis)
	}
	if m.result != nil {
		t.Fatal("stale result kept after failure")
	}
	failedView := m.viewAnalyze()
	if !strings.Contains(failedView, "Analysis failed") || strings.Contains(failedView, "No analysis yet") {
		t.Fatalf("failed view not distinguishable: %q", failedView)
	}
}

func TestLastAnalysisResponseWins(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.startAnalysis("first.mp4")
	m.startAnalysis("second.mp4")

	m.Update(analysisResultMsg{input: "first.mp4", result: api.AnalysisResult{DominantMood: "calm", Confidence: 40}})
	m.Update(analysisResultMsg{input: "second.mp4", result: api.AnalysisResult{DominantMood: "intense", Confidence: 90}})

	if m.result == nil || m.result.DominantMood != "intense" {
		t.Fatalf("expected the later result to win, got %#v", m.result)
	}
}

func TestMetricsUpdateRearmsSubscription(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	_, cmd := m.Update(metricsUpdateMsg{dashboard: metrics.Dashboard{TotalConversations: 3}})
	if m.dashboard.TotalConversations != 3 {
		t.Fatalf("dashboard not updated: %+v", m.dashboard)
	}
	if cmd == nil {
		t.Fatal("expected the subscription wait command to be re-armed")
	}
}

func TestStoreBroadcastReachesModel(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.store.RecordConversation()

	// The subscription pushed the derived view onto the channel; draining it
	// the way Init's wait command does must yield the new dashboard.
	msg := waitForMetrics(m.metricsCh)()
	update, ok := msg.(metricsUpdateMsg)
	if !ok {
		t.Fatalf("unexpected msg %T", msg)
	}
	if update.dashboard.TotalConversations != 1 {
		t.Fatalf("dashboard = %+v, want one conversation", update.dashboard)
	}
}

func TestBuildAnalysisRequestClassification(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name  string
		input string
		want  api.AnalysisKind
	}{
		{"youtube url", "https://www.youtube.com/watch?v=abc123", api.KindYouTube},
		{"short youtube url", "https://youtu.be/abc123", api.KindYouTube},
		{"video file", write("clip.mp4"), api.KindVideo},
		{"pdf file", write("report.pdf"), api.KindPDF},
		{"script file", write("scene.txt"), api.KindScript},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := buildAnalysisRequest(tt.input)
			if err != nil {
				t.Fatalf("buildAnalysisRequest returned error: %v", err)
			}
			if req.Kind != tt.want {
				t.Fatalf("kind = %q, want %q", req.Kind, tt.want)
			}
		})
	}
}

func TestBuildAnalysisRequestValidation(t *testing.T) {
	t.Parallel()

	if _, err := buildAnalysisRequest("   "); err == nil {
		t.Fatal("expected validation error for empty input")
	}
	if _, err := buildAnalysisRequest(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestSwitchTabSwapsComposerPlaceholder(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.switchTab(tabAnalyze)
	if m.composer.Placeholder != composerAnalyzePlaceholder {
		t.Fatalf("placeholder = %q", m.composer.Placeholder)
	}
	m.switchTab(tabChat)
	if m.composer.Placeholder != composerChatPlaceholder {
		t.Fatalf("placeholder = %q", m.composer.Placeholder)
	}
}

func TestTrimmedPreviewKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		limit int
	}{
		{"short value untouched", "clip.mp4", 60},
		{"ascii truncated", strings.Repeat("a", 80), 10},
		{"multibyte at boundary", strings.Repeat("情", 80), 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := trimmedPreview(tt.in, tt.limit)
			if !utf8.ValidString(got) {
				t.Fatalf("trimmedPreview produced invalid UTF-8: %q", got)
			}
			if len([]rune(tt.in)) > tt.limit && len([]rune(got)) > tt.limit {
				t.Fatalf("preview longer than limit: %d runes", len([]rune(got)))
			}
		})
	}
}

func TestSparklineStaysInBounds(t *testing.T) {
	t.Parallel()

	got := sparkline([]int{0, 50, 100, 95, 40})
	if len([]rune(got)) != 5 {
		t.Fatalf("sparkline length = %d, want 5", len([]rune(got)))
	}
}

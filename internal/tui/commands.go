package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dsharma/cogniflow/internal/api"
)

type chatResultMsg struct {
	exchangeID string
	reply      string
	err        error
}

type analysisResultMsg struct {
	input  string
	result api.AnalysisResult
	err    error
}

type statsResultMsg struct {
	stats api.IndexStats
	err   error
}

func sendChatJob(client *api.Client, exchangeID string, req api.ChatRequest) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 3*time.Minute)
		defer cancel()
		result, err := client.SendChat(ctx, req)
		return chatResultMsg{exchangeID: exchangeID, reply: result.Text, err: err}, err
	}
}

func analyzeJob(client *api.Client, input string) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 10*time.Minute)
		defer cancel()
		req, err := buildAnalysisRequest(input)
		if err != nil {
			return analysisResultMsg{input: input, err: err}, err
		}
		result, err := client.Analyze(ctx, req)
		return analysisResultMsg{input: input, result: result, err: err}, err
	}
}

func fetchStatsJob(client *api.Client) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 15*time.Second)
		defer cancel()
		stats, err := client.FetchIndexStats(ctx)
		return statsResultMsg{stats: stats, err: err}, err
	}
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
}

// buildAnalysisRequest classifies the composer input: YouTube links go out
// as URLs, local paths are loaded and tagged by extension.
func buildAnalysisRequest(input string) (api.AnalysisRequest, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return api.AnalysisRequest{}, &api.ValidationError{Reason: "nothing to analyze"}
	}
	if isYouTubeLink(input) {
		return api.AnalysisRequest{Kind: api.KindYouTube, URL: input}, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return api.AnalysisRequest{}, err
	}
	file := &api.FileUpload{Name: filepath.Base(input), Data: data}

	ext := strings.ToLower(filepath.Ext(input))
	switch {
	case videoExtensions[ext]:
		return api.AnalysisRequest{Kind: api.KindVideo, File: file}, nil
	case ext == ".pdf":
		return api.AnalysisRequest{Kind: api.KindPDF, File: file}, nil
	default:
		return api.AnalysisRequest{Kind: api.KindScript, File: file}, nil
	}
}

// credentialFromEnv supplies the external API key. Only external inference
// carries a credential; the adapter drops it for local providers anyway.
func credentialFromEnv(provider api.Provider) string {
	if provider != api.ProviderExternal {
		return ""
	}
	return strings.TrimSpace(os.Getenv("COGNIFLOW_API_KEY"))
}

func isYouTubeLink(input string) bool {
	lower := strings.ToLower(input)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	return strings.Contains(lower, "youtube.com/") || strings.Contains(lower, "youtu.be/")
}

func trimmedPreview(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

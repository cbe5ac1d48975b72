package api

import (
	"context"
	"math"
	"net/url"
	"strings"

	"github.com/dsharma/cogniflow/internal/script"
)

// moodScores converts the backend's audio mood vocabulary into arc intensity
// samples. Unknown tokens fall back to a neutral 50 rather than failing.
var moodScores = map[string]int{
	"intense":   95,
	"energetic": 85,
	"dramatic":  80,
	"dark":      70,
	"calm":      40,
	"neutral":   50,
}

const unknownMoodScore = 50

// Display colors for the synthesized breakdown entries.
const (
	colorDominant  = "#8B5CF6"
	colorSecondary = "#EC4899"
	colorResidual  = "#6B7280"
)

// Analyze submits content for emotion analysis and returns the normalized
// result. Dispatch follows the request's kind tag; every kind converges on
// the same AnalysisResult shape.
//
// A successful call records one analysis sample in the usage metrics; the
// video and youtubeLink kinds additionally count a processed video.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	var (
		result AnalysisResult
		err    error
	)
	switch req.Kind {
	case KindVideo:
		result, err = c.analyzeVideo(ctx, req.File)
	case KindYouTube:
		result, err = c.analyzeYouTube(ctx, req.URL)
	case KindPDF:
		result, err = c.analyzePDF(ctx, req.File)
	case KindScript:
		result, err = c.analyzeScript(ctx, req.File)
	default:
		return AnalysisResult{}, &ValidationError{Reason: "unsupported analysis kind"}
	}
	if err != nil {
		return AnalysisResult{}, err
	}

	if c.usage != nil {
		if req.Kind == KindVideo || req.Kind == KindYouTube {
			c.usage.RecordVideoProcessed()
		}
		c.usage.RecordAnalysisSample(result.Confidence)
	}
	return result, nil
}

func (c *Client) analyzeVideo(ctx context.Context, file *FileUpload) (AnalysisResult, error) {
	if file == nil || len(file.Data) == 0 {
		return AnalysisResult{}, &ValidationError{Reason: "no video file selected"}
	}
	var resp videoAnalysisResponse
	if err := c.postFile(ctx, "/video/upload", file.Name, file.Data, &resp); err != nil {
		return AnalysisResult{}, err
	}
	return normalizeAudioResult(resp), nil
}

func (c *Client) analyzeYouTube(ctx context.Context, link string) (AnalysisResult, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return AnalysisResult{}, &ValidationError{Reason: "no YouTube URL provided"}
	}
	var resp videoAnalysisResponse
	query := url.Values{"url": {link}}
	if err := c.postQuery(ctx, "/video/youtube", query, &resp); err != nil {
		return AnalysisResult{}, err
	}
	return normalizeAudioResult(resp), nil
}

func (c *Client) analyzePDF(ctx context.Context, file *FileUpload) (AnalysisResult, error) {
	if file == nil || len(file.Data) == 0 {
		return AnalysisResult{}, &ValidationError{Reason: "no PDF file selected"}
	}
	var resp scriptAnalysisResponse
	if err := c.postFile(ctx, "/script/upload-pdf", file.Name, file.Data, &resp); err != nil {
		return AnalysisResult{}, err
	}
	return normalizeSampledResult(resp), nil
}

func (c *Client) analyzeScript(ctx context.Context, file *FileUpload) (AnalysisResult, error) {
	if file == nil {
		return AnalysisResult{}, &ValidationError{Reason: "no script file selected"}
	}
	text, err := script.ExtractText(file.Name, file.Data)
	if err != nil {
		return AnalysisResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return AnalysisResult{}, &ValidationError{Reason: "script file contains no text"}
	}
	var resp scriptAnalysisResponse
	if err := c.postJSON(ctx, "/script/analyze", scriptBody{Text: text}, &resp); err != nil {
		return AnalysisResult{}, err
	}
	return normalizeSampledResult(resp), nil
}

// normalizeAudioResult handles the video/YouTube shape: one scalar
// confidence plus a discrete mood timeline that becomes the numeric arc.
func normalizeAudioResult(resp videoAnalysisResponse) AnalysisResult {
	confidence := percent(resp.Confidence)
	arc := make([]int, 0, len(resp.AudioEmotion.EmotionalArc))
	for _, sample := range resp.AudioEmotion.EmotionalArc {
		arc = append(arc, moodScore(sample.Mood))
	}
	mood := fallbackMood(resp.AudioEmotion.DominantMood)
	return AnalysisResult{
		DominantMood: mood,
		Intensity:    intensityFor(confidence),
		Confidence:   confidence,
		EmotionalArc: arc,
		Emotions:     synthesizeBreakdown(mood, confidence),
	}
}

// normalizeSampledResult handles the script/PDF shape, where the arc already
// arrives as per-sample confidence values in [0,1].
func normalizeSampledResult(resp scriptAnalysisResponse) AnalysisResult {
	confidence := percent(resp.Confidence)
	arc := make([]int, 0, len(resp.EmotionalArc))
	for _, sample := range resp.EmotionalArc {
		arc = append(arc, percent(sample))
	}
	mood := fallbackMood(resp.DominantMood)
	return AnalysisResult{
		DominantMood: mood,
		Intensity:    intensityFor(confidence),
		Confidence:   confidence,
		EmotionalArc: arc,
		Emotions:     synthesizeBreakdown(mood, confidence),
	}
}

// synthesizeBreakdown fabricates a three-bucket emotion distribution from the
// single mood/confidence pair the backend returns. This is a presentation
// heuristic with no backend grounding; the formula is a fixed convention and
// the buckets may not sum to exactly 100.
func synthesizeBreakdown(mood string, confidence int) []Emotion {
	dominant := clamp(confidence, 20, 95)
	secondary := int(math.Round(float64(100-dominant) * 0.6))
	if secondary < 5 {
		secondary = 5
	}
	residual := 100 - dominant - secondary
	if residual < 5 {
		residual = 5
	}
	return []Emotion{
		{Label: mood, Percentage: dominant, DisplayColor: colorDominant},
		{Label: "Secondary", Percentage: secondary, DisplayColor: colorSecondary},
		{Label: "Residual", Percentage: residual, DisplayColor: colorResidual},
	}
}

// intensityFor buckets a confidence percentage; lower bounds are inclusive.
func intensityFor(confidence int) Intensity {
	switch {
	case confidence >= 80:
		return IntensityHigh
	case confidence >= 60:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

func moodScore(mood string) int {
	if score, ok := moodScores[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return score
	}
	return unknownMoodScore
}

func fallbackMood(mood string) string {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return "neutral"
	}
	return mood
}

func percent(value float64) int {
	return int(math.Round(value * 100))
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

package api

// ChatMode selects how a chat message is answered.
type ChatMode string

const (
	// ModeGeneral answers from the model alone.
	ModeGeneral ChatMode = "general"
	// ModeContextual grounds the answer against previously uploaded documents.
	ModeContextual ChatMode = "contextual"
)

// ResponseStyle tunes contextual answers.
type ResponseStyle string

const (
	StyleStrict ResponseStyle = "strict"
	StyleSolve  ResponseStyle = "solve"
)

// Provider selects where inference runs.
type Provider string

const (
	ProviderLocal    Provider = "local"
	ProviderExternal Provider = "external"
)

// ChatRequest is a UI-level chat intent. Credential is meaningful only for
// ProviderExternal; ContextDocument only for ModeContextual.
type ChatRequest struct {
	Text            string
	Mode            ChatMode
	Style           ResponseStyle
	Provider        Provider
	Credential      string
	ContextDocument *FileUpload
}

// ChatResult is one completed exchange.
type ChatResult struct {
	Text string
}

// FileUpload carries a file selected in the UI.
type FileUpload struct {
	Name string
	Data []byte
}

// AnalysisKind tags the input variants of an AnalysisRequest.
type AnalysisKind string

const (
	KindVideo   AnalysisKind = "video"
	KindScript  AnalysisKind = "script"
	KindPDF     AnalysisKind = "pdf"
	KindYouTube AnalysisKind = "youtubeLink"
)

// AnalysisRequest is a tagged union over the supported input kinds: File is
// set for video/script/pdf, URL for youtubeLink.
type AnalysisRequest struct {
	Kind AnalysisKind
	File *FileUpload
	URL  string
}

// Intensity buckets a confidence percentage.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

// Emotion is one entry of a result's synthesized breakdown.
type Emotion struct {
	Label        string
	Percentage   int
	DisplayColor string
}

// AnalysisResult is the normalized analysis shape, identical across all
// input kinds.
type AnalysisResult struct {
	DominantMood string
	Intensity    Intensity
	Confidence   int
	EmotionalArc []int
	Emotions     []Emotion
}

// Wire shapes. Field names follow the backend contract; these never leave
// the package.

type chatBody struct {
	Message string `json:"message"`
	LLMType string `json:"llm_type"`
	APIKey  string `json:"api_key,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type ragBody struct {
	Question string `json:"question"`
	Mode     string `json:"mode"`
	LLMType  string `json:"llm_type"`
	APIKey   string `json:"api_key,omitempty"`
}

type ragResponse struct {
	Answer string `json:"answer"`
}

type scriptBody struct {
	Text string `json:"text"`
}

type scriptAnalysisResponse struct {
	DominantMood string    `json:"dominant_mood"`
	Confidence   float64   `json:"confidence"`
	EmotionalArc []float64 `json:"emotional_arc"`
}

type videoAnalysisResponse struct {
	Confidence   float64 `json:"confidence"`
	AudioEmotion struct {
		DominantMood string `json:"dominant_mood"`
		EmotionalArc []struct {
			Mood string `json:"mood"`
		} `json:"emotional_arc"`
	} `json:"audio_emotion"`
}

// Credentials is the signup/login payload.
type Credentials struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what the auth endpoints hand back on success.
type Session struct {
	Token    string `json:"token"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Account is the current-user view.
type Account struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// IndexStats summarizes the backend's document index.
type IndexStats struct {
	TotalChunks     int `json:"total_chunks"`
	UniqueDocuments int `json:"unique_documents"`
}

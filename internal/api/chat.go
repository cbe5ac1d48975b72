package api

import (
	"context"
	"fmt"
	"strings"
)

// SendChat delivers one chat message and returns the assistant's reply.
//
// Contextual requests go through the RAG endpoint; when the request carries a
// context document it is uploaded first, and an upload failure aborts the
// chat call. A successful exchange of either kind counts one conversation in
// the usage metrics.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (ChatResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return ChatResult{}, &ValidationError{Reason: "message text is empty"}
	}

	var result ChatResult
	if req.Mode == ModeContextual {
		if req.ContextDocument != nil {
			if err := c.AttachContextDocument(ctx, *req.ContextDocument); err != nil {
				return ChatResult{}, fmt.Errorf("context document upload failed: %w", err)
			}
		}
		body := ragBody{
			Question: text,
			Mode:     string(req.Style),
			LLMType:  wireProvider(req.Provider),
			APIKey:   wireCredential(req.Provider, req.Credential),
		}
		var resp ragResponse
		if err := c.postJSON(ctx, "/rag-query", body, &resp); err != nil {
			return ChatResult{}, err
		}
		result = ChatResult{Text: resp.Answer}
	} else {
		body := chatBody{
			Message: text,
			LLMType: wireProvider(req.Provider),
			APIKey:  wireCredential(req.Provider, req.Credential),
		}
		var resp chatResponse
		if err := c.postJSON(ctx, "/chat", body, &resp); err != nil {
			return ChatResult{}, err
		}
		result = ChatResult{Text: resp.Response}
	}

	if c.usage != nil {
		c.usage.RecordConversation()
	}
	return result, nil
}

// AttachContextDocument uploads a reference document for contextual answers.
func (c *Client) AttachContextDocument(ctx context.Context, doc FileUpload) error {
	if len(doc.Data) == 0 {
		return &ValidationError{Reason: "context document is empty"}
	}
	return c.postFile(ctx, "/upload-pdf", doc.Name, doc.Data, nil)
}

// wireProvider maps the UI provider vocabulary onto the backend's two
// llm_type values.
func wireProvider(p Provider) string {
	if p == ProviderExternal {
		return "api"
	}
	return "local"
}

// wireCredential forwards the API key only when inference runs externally.
func wireCredential(p Provider, credential string) string {
	if p == ProviderExternal {
		return credential
	}
	return ""
}

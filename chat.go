package agriassist

import (
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	// chatHistoryWindow bounds how much prior conversation is forwarded
	// to the provider per request.
	chatHistoryWindow = 20

	chatDefaultLimit = 40
	chatMaxLimit     = 100

	defaultSessionKey = "home"
)

// llmFallbackMessage is stored and returned as the assistant reply when
// the provider call fails. Provider failures never surface as errors.
const llmFallbackMessage = "There was a problem contacting the AI model. Please try again in a moment."

const systemPrompt = "You are an Indian agriculture assistant chatbot. " +
	"You help farmers with crops, soil, irrigation, weather, mandi rates, and government schemes. " +
	"Explain in simple language. If you are not sure, say you are not sure instead of guessing."

// Chat persists conversation history and relays it to the LLM provider.
type Chat struct {
	Store ChatStore
	LLM   LLMClient
}

// HandleHistory returns the user's most recent messages in chronological
// order, optionally scoped to one session.
func (c *Chat) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())

	limit := chatDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > chatMaxLimit {
		limit = chatMaxLimit
	}

	messages, err := c.Store.RecentMessages(userID, r.URL.Query().Get("sessionId"), limit)
	if err != nil {
		log.Printf("Chat history error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandlePost stores the user's message, asks the provider for a reply
// with a bounded window of prior conversation, stores that reply, and
// returns both new messages.
func (c *Chat) HandlePost(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())

	var req struct {
		Content   string `json:"content"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		writeMessage(w, http.StatusBadRequest, "content is required")
		return
	}

	sessionKey := req.SessionID
	if sessionKey == "" {
		sessionKey = defaultSessionKey
	}

	userMsg := &ChatMessage{
		ID:        newUUID(),
		UserID:    userID,
		Role:      RoleUser,
		Content:   req.Content,
		SessionID: sessionKey,
	}
	if err := c.Store.CreateMessage(userMsg); err != nil {
		log.Printf("Chat error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	history, err := c.Store.RecentMessages(userID, sessionKey, chatHistoryWindow)
	if err != nil {
		log.Printf("Chat error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	conversation := make([]Message, 0, len(history)+1)
	conversation = append(conversation, Message{Role: RoleSystem, Content: systemPrompt})
	for _, m := range history {
		conversation = append(conversation, Message{Role: m.Role, Content: m.Content})
	}

	assistantText, err := c.LLM.Complete(r.Context(), conversation)
	if err != nil {
		slog.Warn("llm request failed, answering with fallback", "error", err)
		assistantText = llmFallbackMessage
	}

	botMsg := &ChatMessage{
		ID:        newUUID(),
		UserID:    userID,
		Role:      RoleAssistant,
		Content:   assistantText,
		SessionID: sessionKey,
	}
	if err := c.Store.CreateMessage(botMsg); err != nil {
		log.Printf("Chat error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"messages": []*ChatMessage{userMsg, botMsg},
	})
}

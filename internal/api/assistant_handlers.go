package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/renthing/internal/assistant"
	"github.com/renthing/internal/interactionlog"
)

// MessageRequest is one turn sent to the assistant
type MessageRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// MessageResponse wraps the assistant reply with the session id the
// caller should send on the next turn
type MessageResponse struct {
	SessionID string               `json:"session_id"`
	Response  assistant.AIResponse `json:"response"`
}

// ValidatePathResponse reports whether a navigation target is real
type ValidatePathResponse struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
}

// AssistantHandlers owns the HTTP surface of the assistant. The core
// is stateless between calls, so this layer keeps the per-session
// conversation context and re-supplies it on every turn.
type AssistantHandlers struct {
	assistant *assistant.Assistant
	logStore  interactionlog.Store

	mu       sync.Mutex
	sessions map[string]*assistant.ConversationContext
}

func NewAssistantHandlers(a *assistant.Assistant, logStore interactionlog.Store) *AssistantHandlers {
	return &AssistantHandlers{
		assistant: a,
		logStore:  logStore,
		sessions:  make(map[string]*assistant.ConversationContext),
	}
}

const maxHistoryTurns = 40

func (h *AssistantHandlers) handleMessage(c echo.Context) error {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	convCtx := h.contextFor(sessionID, req.UserID)
	resp := h.assistant.ProcessMessage(c.Request().Context(), req.Text, convCtx)
	h.appendTurn(sessionID, req.Text, resp.Text)

	return c.JSON(http.StatusOK, MessageResponse{
		SessionID: sessionID,
		Response:  resp,
	})
}

func (h *AssistantHandlers) handleValidatePath(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "path query parameter is required",
		})
	}

	valid, err := h.assistant.IsValidPath(c.Request().Context(), path)
	if err != nil {
		// Default deny: a failed lookup means the path is not safe to visit.
		log.Warn().Err(err).Str("path", path).Msg("Path validation errored")
		valid = false
	}

	return c.JSON(http.StatusOK, ValidatePathResponse{Path: path, Valid: valid})
}

func (h *AssistantHandlers) handleSuggestion(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	userID := c.QueryParam("user_id")
	if sessionID == "" && userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "session_id or user_id is required",
		})
	}

	convCtx := h.contextFor(sessionID, userID)
	resp := h.assistant.SuggestListing(c.Request().Context(), convCtx)
	if resp == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, MessageResponse{SessionID: sessionID, Response: *resp})
}

func (h *AssistantHandlers) handleListingPreview(c echo.Context) error {
	resp, err := h.assistant.LookupListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "listing not found",
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AssistantHandlers) handleAggregates(c echo.Context) error {
	since := time.Now().AddDate(0, 0, -30)
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "since must be RFC3339",
			})
		}
		since = parsed
	}

	agg, err := h.logStore.Aggregates(c.Request().Context(), since)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute interaction aggregates")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to compute aggregates",
		})
	}
	return c.JSON(http.StatusOK, agg)
}

// contextFor returns the stored context for a session, creating one
// when the session is new. Turns for one session are expected to
// arrive in order; the assistant core itself holds no session state.
func (h *AssistantHandlers) contextFor(sessionID, userID string) *assistant.ConversationContext {
	h.mu.Lock()
	defer h.mu.Unlock()

	convCtx, ok := h.sessions[sessionID]
	if !ok {
		convCtx = &assistant.ConversationContext{SessionID: sessionID}
		if sessionID != "" {
			h.sessions[sessionID] = convCtx
		}
	}
	if userID != "" {
		convCtx.UserID = userID
	}
	return convCtx
}

func (h *AssistantHandlers) appendTurn(sessionID, userText, aiText string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	convCtx, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	convCtx.History = append(convCtx.History,
		assistant.HistoryMessage{Role: assistant.RoleUser, Content: userText},
		assistant.HistoryMessage{Role: assistant.RoleAssistant, Content: aiText},
	)
	if len(convCtx.History) > maxHistoryTurns {
		convCtx.History = convCtx.History[len(convCtx.History)-maxHistoryTurns:]
	}
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/richclient/internal/security"
	"github.com/mrlokans/richclient/internal/session"
	"github.com/mrlokans/richclient/internal/store"
)

// eventStreamKeepAlive is how often an idle event stream gets a comment line.
const eventStreamKeepAlive = 30 * time.Second

// eventBuffer is how many unsent snapshots a stream may queue.
const eventBuffer = 16

// UIStateResponse is returned by every UI state endpoint.
type UIStateResponse struct {
	StateID   string         `json:"state_id"`
	State     store.Snapshot `json:"state"`
	CSRFToken string         `json:"csrf_token,omitempty"`
}

// AuthModeRequest names an auth mode ("login" or "signup").
type AuthModeRequest struct {
	Mode string `json:"mode"`
}

// UserRequest is the body of PUT /api/ui-state/user.
type UserRequest struct {
	User store.User `json:"user"`
}

// UIStateController serves the auth UI state of the caller's session.
type UIStateController struct {
	logger *zap.Logger
}

func NewUIStateController(logger *zap.Logger) *UIStateController {
	return &UIStateController{logger: logger}
}

// uiState fetches the session state or aborts with 500 if the session
// middleware is missing.
func (uc *UIStateController) uiState(c *gin.Context) *store.UIState {
	state := session.UIState(c)
	if state == nil {
		respondInternalError(c, uc.logger, errors.New("ui state middleware not installed"), "ui state")
		c.Abort()
	}
	return state
}

func (uc *UIStateController) respondState(c *gin.Context, state *store.UIState) {
	c.JSON(http.StatusOK, UIStateResponse{
		StateID:   session.StateID(c),
		State:     state.Snapshot(),
		CSRFToken: security.GetCSRFToken(c),
	})
}

// GetState handles GET /api/ui-state.
func (uc *UIStateController) GetState(c *gin.Context) {
	state := uc.uiState(c)
	if state == nil {
		return
	}
	uc.respondState(c, state)
}

// OpenAuthModal handles POST /api/ui-state/auth-modal. The body may name a
// mode; without one the modal opens in login mode.
func (uc *UIStateController) OpenAuthModal(c *gin.Context) {
	state := uc.uiState(c)
	if state == nil {
		return
	}

	var req AuthModeRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	mode := store.DefaultAuthMode
	if req.Mode != "" {
		parsed, err := store.ParseAuthMode(req.Mode)
		if err != nil {
			respondBadRequestCode(c, "invalid_auth_mode", err.Error())
			return
		}
		mode = parsed
	}

	state.OpenAuthModal(mode)
	uc.respondState(c, state)
}

// CloseAuthModal handles DELETE /api/ui-state/auth-modal.
func (uc *UIStateController) CloseAuthModal(c *gin.Context) {
	state := uc.uiState(c)
	if state == nil {
		return
	}
	state.CloseAuthModal()
	uc.respondState(c, state)
}

// SetAuthMode handles PUT /api/ui-state/auth-mode. It changes the mode
// without touching modal visibility.
func (uc *UIStateController) SetAuthMode(c *gin.Context) {
	state := uc.uiState(c)
	if state == nil {
		return
	}

	var req AuthModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	mode, err := store.ParseAuthMode(req.Mode)
	if err != nil {
		respondBadRequestCode(c, "invalid_auth_mode", err.Error())
		return
	}

	state.AuthMode.Set(mode)
	uc.respondState(c, state)
}

// SetUser handles PUT /api/ui-state/user.
func (uc *UIStateController) SetUser(c *gin.Context) {
	state := uc.uiState(c)
	if state == nil {
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.User == nil {
		respondBadRequestCode(c, "missing_user", "user is required; use DELETE to clear it")
		return
	}

	state.User.Set(req.User)
	uc.respondState(c, state)
}

// ClearUser handles DELETE /api/ui-state/user.
func (uc *UIStateController) ClearUser(c *gin.Context) {
	state := uc.uiState(c)
	if state == nil {
		return
	}
	state.User.Set(nil)
	uc.respondState(c, state)
}

// Events handles GET /api/ui-state/events. It streams the current snapshot
// followed by one "state" event per change until the client goes away.
func (uc *UIStateController) Events(c *gin.Context) {
	state := uc.uiState(c)
	if state == nil {
		return
	}

	stateID := session.StateID(c)
	updates := make(chan store.Snapshot, eventBuffer)
	unsubscribe := state.Subscribe(func(snap store.Snapshot) {
		select {
		case updates <- snap:
		default:
			uc.logger.Debug("dropping ui state event for slow client",
				zap.String("state_id", stateID))
		}
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	keepAlive := time.NewTicker(eventStreamKeepAlive)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case snap := <-updates:
			c.SSEvent("state", snap)
			c.Writer.Flush()
		case <-keepAlive.C:
			if _, err := c.Writer.WriteString(": keep-alive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}

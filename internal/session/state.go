package session

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/richclient/internal/store"
)

// Gin context keys
const (
	ContextKeyUIState = "ui_state"
	ContextKeyStateID = "ui_state_id"
)

// StateMiddleware attaches the session's UIState to the Gin context.
//
// The state lives in registry; when the registry has no entry for the
// session (first visit, restart, or after an idle sweep) it is rebuilt from
// the snapshot stored in the session. Changes made while the request is
// being handled are written back to the session.
func (m *Manager) StateMiddleware(registry *store.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := m.StateID(ctx)

		state, created := registry.GetOrCreate(id)
		if created {
			if snap, ok := m.LoadSnapshot(ctx); ok {
				state.Restore(snap)
				logger.Debug("restored ui state from session", zap.String("state_id", id))
			}
		}

		var ready atomic.Bool
		unsubscribe := state.Subscribe(func(snap store.Snapshot) {
			if !ready.Load() {
				return
			}
			if err := m.SaveSnapshot(ctx, snap); err != nil {
				logger.Warn("failed to persist ui state", zap.String("state_id", id), zap.Error(err))
			}
		})
		ready.Store(true)
		defer unsubscribe()

		c.Set(ContextKeyUIState, state)
		c.Set(ContextKeyStateID, id)
		c.Next()
	}
}

// UIState returns the state attached by StateMiddleware, or nil.
func UIState(c *gin.Context) *store.UIState {
	if v, exists := c.Get(ContextKeyUIState); exists {
		if s, ok := v.(*store.UIState); ok {
			return s
		}
	}
	return nil
}

// StateID returns the state ID attached by StateMiddleware.
func StateID(c *gin.Context) string {
	return c.GetString(ContextKeyStateID)
}

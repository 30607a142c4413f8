// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// StageWSHandler upgrades the connection and streams stage events for one
// room. Clients that fail to establish the socket fall back to polling
// /game/state; both paths read the same rows.
func (s *Server) StageWSHandler(w http.ResponseWriter, r *http.Request) {
	// /game/ws/{room_id}
	roomIDStr := strings.TrimPrefix(r.URL.Path, "/game/ws/")
	if idx := strings.Index(roomIDStr, "/"); idx != -1 {
		roomIDStr = roomIDStr[:idx]
	}
	roomID, err := uuid.Parse(roomIDStr)
	if err != nil {
		http.Error(w, "invalid room_id in path (/game/ws/{room_id})", http.StatusBadRequest)
		return
	}

	if _, err := s.Service.Room(r.Context(), roomID); err != nil {
		s.writeError(w, err)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:   []string{"game"},
		OriginPatterns: []string{"*"}, // adjust for production security
	})
	if err != nil {
		s.Logger.Warnf("WebSocket accept error for room %s: %v", roomID, err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "handler exit")

	if c.Subprotocol() != "game" {
		c.Close(websocket.StatusPolicyViolation, "client must use the 'game' subprotocol")
		return
	}
	s.Logger.Infof("stage subscription established for room %s from %s", roomID, r.RemoteAddr)

	ctx := r.Context()
	events, cancel, err := s.Service.Subscribe(ctx, roomID)
	if err != nil {
		s.Logger.Warnf("subscribe failed for room %s: %v", roomID, err)
		c.Close(websocket.StatusTryAgainLater, "subscription unavailable, poll /game/state")
		return
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			c.Close(websocket.StatusNormalClosure, "bye")
			return
		case ev, ok := <-events:
			if !ok {
				c.Close(websocket.StatusNormalClosure, "subscription closed")
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.Logger.Warnf("failed to marshal stage event: %v", err)
				continue
			}
			writeCtx, writeCancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			writeCancel()
			if err != nil {
				s.Logger.Infof("stage subscriber for room %s went away: %v", roomID, err)
				return
			}
		}
	}
}

// internal/handlers/room.go
package handlers

import (
	"encoding/json"
	"net/http"
)

type createRoomRequest struct {
	HostName string `json:"host_name"`
}

type createRoomResponse struct {
	RoomID   string `json:"room_id"`
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
}

// CreateRoomHandler creates a room plus its host player.
func (s *Server) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}

	room, host, err := s.Service.CreateRoom(r.Context(), req.HostName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createRoomResponse{
		RoomID:   room.ID.String(),
		Code:     room.Code,
		PlayerID: host.ID.String(),
	})
}

type joinRoomRequest struct {
	PlayerName string `json:"player_name"`
	Code       string `json:"code"`
}

type joinRoomResponse struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

// JoinRoomHandler adds a player to an active room by code.
func (s *Server) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}

	room, player, err := s.Service.JoinRoom(r.Context(), req.PlayerName, req.Code)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joinRoomResponse{
		RoomID:   room.ID.String(),
		PlayerID: player.ID.String(),
	})
}

// ListPlayersHandler returns the room's players in join order, so lobby
// views and vote pickers render the same ordering the tally uses.
func (s *Server) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := parseUUID(r.URL.Query().Get("room_id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	players, err := s.Service.Players(r.Context(), roomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

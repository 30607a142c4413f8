// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

type startGameRequest struct {
	Code string `json:"code"`
}

// StartGameHandler starts the first round for a room by code.
func (s *Server) StartGameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}
	round, err := s.Service.StartGame(r.Context(), req.Code)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"round": round})
}

// GetPromptHandler returns the caller's prompt text for the current round.
func (s *Server) GetPromptHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parseUUID(r.URL.Query().Get("player_id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	roomID, err := parseUUID(r.URL.Query().Get("room_id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.Service.GetPrompt(r.Context(), playerID, roomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type submitAnswerRequest struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
	PromptID string `json:"prompt_id"`
	Text     string `json:"text"`
}

// SubmitAnswerHandler records an answer and reports whether the room is
// ready to move on.
func (s *Server) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}
	playerID, err := parseUUID(req.PlayerID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	roomID, err := parseUUID(req.RoomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	promptID, err := parseUUID(req.PromptID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	allSubmitted, err := s.Service.SubmitAnswer(r.Context(), playerID, roomID, promptID, req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"all_submitted": allSubmitted})
}

// CheckAnswersHandler is the poll path for the answering stage.
func (s *Server) CheckAnswersHandler(w http.ResponseWriter, r *http.Request) {
	roomID, round, err := s.roomAndRound(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sheet, err := s.Service.CheckAnswers(r.Context(), roomID, round)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

type submitVoteRequest struct {
	VoterID    string `json:"voter_id"`
	RoomID     string `json:"room_id"`
	VotedForID string `json:"voted_for_id"`
}

// SubmitVoteHandler records an accusation and returns the fresh tally.
func (s *Server) SubmitVoteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req submitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}
	voterID, err := parseUUID(req.VoterID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	roomID, err := parseUUID(req.RoomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	votedForID, err := parseUUID(req.VotedForID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tally, err := s.Service.SubmitVote(r.Context(), voterID, roomID, votedForID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

// VoteResultsHandler is the poll path for the voting and results stages.
func (s *Server) VoteResultsHandler(w http.ResponseWriter, r *http.Request) {
	roomID, round, err := s.roomAndRound(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	tally, err := s.Service.VoteResults(r.Context(), roomID, round)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

type newRoundRequest struct {
	RoomID string `json:"room_id"`
}

// StartNewRoundHandler advances the room to the next round.
func (s *Server) StartNewRoundHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req newRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request payload", http.StatusBadRequest)
		return
	}
	roomID, err := parseUUID(req.RoomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	round, err := s.Service.StartNewRound(r.Context(), roomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"new_round_number": round})
}

// GameStateHandler returns the current stage; clients without a WS
// subscription poll this.
func (s *Server) GameStateHandler(w http.ResponseWriter, r *http.Request) {
	roomID, round, err := s.roomAndRound(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	stage, err := s.Service.GameState(r.Context(), roomID, round)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"current_stage": string(stage)})
}

// roomAndRound pulls the (room_id, round) pair common to the read paths.
// A missing or malformed round defaults to the room's current round.
func (s *Server) roomAndRound(r *http.Request) (uuid.UUID, int, error) {
	id, err := parseUUID(r.URL.Query().Get("room_id"))
	if err != nil {
		return uuid.Nil, 0, err
	}
	round, err := strconv.Atoi(r.URL.Query().Get("round"))
	if err != nil || round < 0 {
		round = 0
		if room, rErr := s.Service.Room(r.Context(), id); rErr == nil {
			round = room.RoundNumber
		}
	}
	return id, round, nil
}

// internal/handlers/api_server.go
package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/oddball-games/oddball/internal/game"
	"github.com/oddball-games/oddball/internal/middleware"
)

// Server exposes the game service over HTTP and WebSocket.
type Server struct {
	Service *game.Service
	Logger  *logrus.Logger
}

// NewServer wires the handler surface around a game service.
func NewServer(svc *game.Service, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{Service: svc, Logger: logger}
}

// Routes builds the HTTP mux with logging middleware applied.
func (s *Server) Routes() http.Handler {
	logged := middleware.LogMiddleware(s.Logger)

	mux := http.NewServeMux()
	mux.Handle("/room/create", logged(http.HandlerFunc(s.CreateRoomHandler)))
	mux.Handle("/room/join", logged(http.HandlerFunc(s.JoinRoomHandler)))
	mux.Handle("/room/players", logged(http.HandlerFunc(s.ListPlayersHandler)))
	mux.Handle("/game/start", logged(http.HandlerFunc(s.StartGameHandler)))
	mux.Handle("/game/prompt", logged(http.HandlerFunc(s.GetPromptHandler)))
	mux.Handle("/game/answer", logged(http.HandlerFunc(s.SubmitAnswerHandler)))
	mux.Handle("/game/answers", logged(http.HandlerFunc(s.CheckAnswersHandler)))
	mux.Handle("/game/vote", logged(http.HandlerFunc(s.SubmitVoteHandler)))
	mux.Handle("/game/votes", logged(http.HandlerFunc(s.VoteResultsHandler)))
	mux.Handle("/game/round/next", logged(http.HandlerFunc(s.StartNewRoundHandler)))
	mux.Handle("/game/state", logged(http.HandlerFunc(s.GameStateHandler)))
	mux.Handle("/game/ws/", logged(http.HandlerFunc(s.StageWSHandler)))
	mux.HandleFunc("/", s.PingHandler)
	return mux
}

// PingHandler answers health checks.
func (s *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

// internal/store/memory.go
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oddball-games/oddball/internal/models"
)

type answerKey struct {
	playerID uuid.UUID
	roomID   uuid.UUID
	round    int
}

type voteKey struct {
	voterID uuid.UUID
	roomID  uuid.UUID
	round   int
}

type roundKey struct {
	roomID uuid.UUID
	round  int
}

// Memory is an in-memory Store used by tests and local development. It
// mirrors the uniqueness and ordering guarantees of the Postgres store:
// one row per key, players listed in join order.
type Memory struct {
	mu         sync.RWMutex
	rooms      map[uuid.UUID]*models.Room
	players    map[uuid.UUID]*models.Player
	roomOrder  map[uuid.UUID][]uuid.UUID // roomID -> playerIDs in join order
	prompts    []models.Prompt
	selections map[roundKey]*models.PromptSelection
	answers    map[answerKey]*models.Answer
	votes      map[voteKey]*models.Vote
	states     map[roundKey]*models.RoundState
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		rooms:      make(map[uuid.UUID]*models.Room),
		players:    make(map[uuid.UUID]*models.Player),
		roomOrder:  make(map[uuid.UUID][]uuid.UUID),
		selections: make(map[roundKey]*models.PromptSelection),
		answers:    make(map[answerKey]*models.Answer),
		votes:      make(map[voteKey]*models.Vote),
		states:     make(map[roundKey]*models.RoundState),
	}
}

func (m *Memory) CreateRoom(ctx context.Context, room *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[room.ID]; ok {
		return ErrConflict
	}
	for _, r := range m.rooms {
		if strings.EqualFold(r.Code, room.Code) {
			return ErrConflict
		}
	}
	cp := *room
	m.rooms[room.ID] = &cp
	return nil
}

func (m *Memory) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *Memory) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if strings.EqualFold(r.Code, code) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SetRoomRound(ctx context.Context, roomID uuid.UUID, round int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	r.RoundNumber = round
	return nil
}

func (m *Memory) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
	for _, pid := range m.roomOrder[roomID] {
		delete(m.players, pid)
	}
	delete(m.roomOrder, roomID)
	return nil
}

func (m *Memory) CreatePlayer(ctx context.Context, player *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[player.ID]; ok {
		return ErrConflict
	}
	cp := *player
	m.players[player.ID] = &cp
	m.roomOrder[player.RoomID] = append(m.roomOrder[player.RoomID], player.ID)
	return nil
}

func (m *Memory) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) ListPlayers(ctx context.Context, roomID uuid.UUID) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var players []models.Player
	for _, pid := range m.roomOrder[roomID] {
		if p, ok := m.players[pid]; ok {
			players = append(players, *p)
		}
	}
	return players, nil
}

func (m *Memory) CountPlayers(ctx context.Context, roomID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, pid := range m.roomOrder[roomID] {
		if _, ok := m.players[pid]; ok {
			count++
		}
	}
	return count, nil
}

func (m *Memory) ClearImposters(ctx context.Context, roomID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pid := range m.roomOrder[roomID] {
		if p, ok := m.players[pid]; ok {
			p.IsImposter = false
		}
	}
	return nil
}

func (m *Memory) SetImposter(ctx context.Context, playerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok {
		return ErrNotFound
	}
	p.IsImposter = true
	return nil
}

func (m *Memory) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.prompts {
		if p.ID == prompt.ID {
			return ErrConflict
		}
	}
	m.prompts = append(m.prompts, *prompt)
	return nil
}

func (m *Memory) GetPrompt(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.prompts {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListPrompts(ctx context.Context) ([]models.Prompt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Prompt, len(m.prompts))
	copy(out, m.prompts)
	return out, nil
}

func (m *Memory) GetPromptSelection(ctx context.Context, roomID uuid.UUID, round int) (*models.PromptSelection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sel, ok := m.selections[roundKey{roomID, round}]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sel
	return &cp, nil
}

func (m *Memory) InsertPromptSelection(ctx context.Context, sel *models.PromptSelection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := roundKey{sel.RoomID, sel.Round}
	if _, ok := m.selections[key]; ok {
		return ErrConflict
	}
	cp := *sel
	m.selections[key] = &cp
	return nil
}

func (m *Memory) DeletePromptSelections(ctx context.Context, roomID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.selections {
		if key.roomID == roomID {
			delete(m.selections, key)
		}
	}
	return nil
}

func (m *Memory) UpsertAnswer(ctx context.Context, answer *models.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *answer
	m.answers[answerKey{answer.PlayerID, answer.RoomID, answer.Round}] = &cp
	return nil
}

func (m *Memory) ListAnswers(ctx context.Context, roomID uuid.UUID, round int) ([]models.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var answers []models.Answer
	// join order keeps the listing stable for clients rendering answers
	for _, pid := range m.roomOrder[roomID] {
		if a, ok := m.answers[answerKey{pid, roomID, round}]; ok {
			answers = append(answers, *a)
		}
	}
	return answers, nil
}

func (m *Memory) CountAnswers(ctx context.Context, roomID uuid.UUID, round int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for key := range m.answers {
		if key.roomID == roomID && key.round == round {
			count++
		}
	}
	return count, nil
}

func (m *Memory) DeleteAnswers(ctx context.Context, roomID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.answers {
		if key.roomID == roomID {
			delete(m.answers, key)
		}
	}
	return nil
}

func (m *Memory) UpsertVote(ctx context.Context, vote *models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *vote
	m.votes[voteKey{vote.VoterID, vote.RoomID, vote.Round}] = &cp
	return nil
}

func (m *Memory) ListVotes(ctx context.Context, roomID uuid.UUID, round int) ([]models.Vote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var votes []models.Vote
	for _, pid := range m.roomOrder[roomID] {
		if v, ok := m.votes[voteKey{pid, roomID, round}]; ok {
			votes = append(votes, *v)
		}
	}
	return votes, nil
}

func (m *Memory) DeleteVotes(ctx context.Context, roomID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.votes {
		if key.roomID == roomID {
			delete(m.votes, key)
		}
	}
	return nil
}

func (m *Memory) UpsertRoundState(ctx context.Context, roomID uuid.UUID, round int, stage models.Stage, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[roundKey{roomID, round}] = &models.RoundState{
		RoomID:      roomID,
		Round:       round,
		Stage:       stage,
		LastUpdated: at,
	}
	return nil
}

func (m *Memory) GetRoundState(ctx context.Context, roomID uuid.UUID, round int) (*models.RoundState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[roundKey{roomID, round}]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *st
	return &cp, nil
}

var _ Store = (*Memory)(nil)

// internal/game/prompts.go
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
	"github.com/oddball-games/oddball/internal/store"
)

// Player roles as reported to clients.
const (
	RoleImposter = "imposter"
	RoleReal     = "real"
)

// FallbackPrompt is served when the prompt reference set is empty. A round
// with a boring question beats a round that fails to start.
var FallbackPrompt = models.Prompt{
	ID:           uuid.MustParse("00000000-0000-0000-0000-000000000001"),
	RealText:     "What is your favorite breakfast?",
	ImposterText: "What is your favorite dinner?",
}

// PromptView is what one player sees for the current round.
type PromptView struct {
	PromptID uuid.UUID `json:"prompt_id"`
	Round    int       `json:"round"`
	Text     string    `json:"text"`
	Role     string    `json:"role"`
}

// promptHash is a polynomial rolling hash over s. It must stay a pure
// function of its input: every process hashing the same (room, round) key
// has to land on the same prompt with no coordination.
func promptHash(s string) int {
	var h int64
	for _, c := range s {
		h = h*31 + int64(c)
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

// selectPrompt picks the prompt for (roomID, round). Idempotent and
// order-independent: once any writer commits a selection, everyone reads
// it back, and before that all callers hash to the same index anyway.
func (s *Service) selectPrompt(ctx context.Context, roomID uuid.UUID, round int) (*models.Prompt, error) {
	// a committed selection always wins over the hash
	if sel, err := s.store.GetPromptSelection(ctx, roomID, round); err == nil {
		if p, err := s.store.GetPrompt(ctx, sel.PromptID); err == nil {
			return p, nil
		}
	}

	// if any answer was already recorded for this round, reuse its prompt;
	// this covers a selection write that failed silently after the fact
	if answers, err := s.store.ListAnswers(ctx, roomID, round); err == nil && len(answers) > 0 {
		if p, err := s.store.GetPrompt(ctx, answers[0].PromptID); err == nil {
			return p, nil
		}
	}

	prompts, err := s.store.ListPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing prompts: %w", err)
	}
	if len(prompts) == 0 {
		fb := FallbackPrompt
		return &fb, nil
	}

	idx := promptHash(fmt.Sprintf("%s_%d", roomID, round)) % len(prompts)
	chosen := prompts[idx]

	sel := &models.PromptSelection{RoomID: roomID, Round: round, PromptID: chosen.ID}
	if err := s.store.InsertPromptSelection(ctx, sel); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// another caller committed first; their choice stands
			if stored, err := s.store.GetPromptSelection(ctx, roomID, round); err == nil {
				if p, err := s.store.GetPrompt(ctx, stored.PromptID); err == nil {
					return p, nil
				}
			}
		} else {
			s.log.Warnf("failed to persist prompt selection for room %s round %d: %v", roomID, round, err)
		}
	}
	return &chosen, nil
}

// GetPrompt returns the round's prompt text for one player, worded for
// their role. The first successful fetch of a started round moves the
// stage from waiting to answering.
func (s *Service) GetPrompt(ctx context.Context, playerID, roomID uuid.UUID) (*PromptView, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.RoomID != roomID {
		return nil, ErrForbidden
	}

	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.RoundNumber == 0 {
		return nil, fmt.Errorf("%w: round has not started", ErrInvalid)
	}

	prompt, err := s.selectPrompt(ctx, roomID, room.RoundNumber)
	if err != nil {
		return nil, err
	}

	view := &PromptView{
		PromptID: prompt.ID,
		Round:    room.RoundNumber,
		Text:     prompt.RealText,
		Role:     RoleReal,
	}
	if player.IsImposter {
		view.Text = prompt.ImposterText
		view.Role = RoleImposter
	}

	s.advance(ctx, roomID, room.RoundNumber, models.StageAnswering)
	return view, nil
}

// DefaultPrompts is the starter prompt set seeded at boot when the store
// has none.
var DefaultPrompts = []models.Prompt{
	{RealText: "What's something you'd bring to a deserted island?", ImposterText: "What's something you'd bring on a camping trip?"},
	{RealText: "Name a food you could eat every day.", ImposterText: "Name a food you'd serve at a fancy dinner."},
	{RealText: "What's your go-to karaoke song?", ImposterText: "What song always gets stuck in your head?"},
	{RealText: "Describe your perfect weekend in one word.", ImposterText: "Describe your perfect vacation in one word."},
	{RealText: "What animal would you want as a pet?", ImposterText: "What animal are you most afraid of?"},
	{RealText: "What superpower would you pick?", ImposterText: "What superpower would be the most annoying?"},
	{RealText: "What's the best movie snack?", ImposterText: "What's the best road-trip snack?"},
	{RealText: "What chore do you secretly enjoy?", ImposterText: "What chore do you always put off?"},
}

// SeedPrompts inserts DefaultPrompts when the prompt table is empty.
func SeedPrompts(ctx context.Context, st store.Store) error {
	existing, err := st.ListPrompts(ctx)
	if err != nil {
		return fmt.Errorf("listing prompts: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range DefaultPrompts {
		p.ID = uuid.New()
		if err := st.CreatePrompt(ctx, &p); err != nil && !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("seeding prompt: %w", err)
		}
	}
	return nil
}

// internal/game/votes.go
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oddball-games/oddball/internal/models"
	"github.com/oddball-games/oddball/internal/store"
)

// TallyResult is the full vote tally for one round, including the impostor
// so callers can decide win/lose without a second lookup.
type TallyResult struct {
	Round             int                     `json:"round"`
	Counts            map[uuid.UUID]int       `json:"counts"`
	VoterMap          map[uuid.UUID]uuid.UUID `json:"voter_map"`
	TotalPlayers      int                     `json:"total_players"`
	TotalVotes        int                     `json:"total_votes"`
	AllVoted          bool                    `json:"all_voted"`
	MajorityThreshold int                     `json:"majority_threshold"`
	MajorityReached   bool                    `json:"majority_reached"`
	MajorityTargetID  uuid.UUID               `json:"majority_target_id"`
	Forced            bool                    `json:"forced"`
	HighestCount      int                     `json:"highest_count"`
	HighestTargetID   uuid.UUID               `json:"highest_target_id"`
	Imposter          *models.Player          `json:"imposter,omitempty"`
	ImposterCaught    bool                    `json:"imposter_caught"`
}

// SubmitVote records one player's accusation for the current round, then
// re-tallies. Reaching majority (true or forced) moves the stage to
// results.
func (s *Service) SubmitVote(ctx context.Context, voterID, roomID, votedForID uuid.UUID) (*TallyResult, error) {
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

	voter, err := s.store.GetPlayer(ctx, voterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if voter.RoomID != roomID {
		return nil, ErrForbidden
	}
	target, err := s.store.GetPlayer(ctx, votedForID)
	if err != nil || target.RoomID != roomID {
		return nil, ErrForbidden
	}

	vote := &models.Vote{
		VoterID:    voterID,
		RoomID:     roomID,
		Round:      room.RoundNumber,
		VotedForID: votedForID,
		CastAt:     time.Now(),
	}
	if err := s.store.UpsertVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("storing vote: %w", err)
	}

	return s.tallyAndAdvance(ctx, roomID, room.RoundNumber)
}

// VoteResults returns the full tally with the impostor reveal. Like
// CheckAnswers, pollers hitting this path re-run the results transition.
func (s *Service) VoteResults(ctx context.Context, roomID uuid.UUID, round int) (*TallyResult, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.tallyAndAdvance(ctx, roomID, round)
}

func (s *Service) tallyAndAdvance(ctx context.Context, roomID uuid.UUID, round int) (*TallyResult, error) {
	result, err := s.tally(ctx, roomID, round)
	if err != nil {
		return nil, err
	}
	// repeated invocations after the transition already happened land on
	// the same stage value
	if result.MajorityReached && result.Imposter != nil {
		s.advance(ctx, roomID, round, models.StageResults)
	}
	return result, nil
}

// tally recomputes the vote state from fresh reads. The majority scan
// walks players in join order and stops at the first one reaching the
// threshold; the highest-count runner-up is tracked first-seen-on-ties so
// forced conclusions stay deterministic.
func (s *Service) tally(ctx context.Context, roomID uuid.UUID, round int) (*TallyResult, error) {
	players, err := s.store.ListPlayers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	votes, err := s.store.ListVotes(ctx, roomID, round)
	if err != nil {
		return nil, fmt.Errorf("listing votes: %w", err)
	}

	counts := make(map[uuid.UUID]int)
	voterMap := make(map[uuid.UUID]uuid.UUID)
	for _, v := range votes {
		counts[v.VotedForID]++
		voterMap[v.VoterID] = v.VotedForID
	}

	result := &TallyResult{
		Round:             round,
		Counts:            counts,
		VoterMap:          voterMap,
		TotalPlayers:      len(players),
		TotalVotes:        len(votes),
		AllVoted:          len(players) > 0 && len(votes) == len(players),
		MajorityThreshold: len(players)/2 + 1,
		Imposter:          findImposter(players),
	}

	for i := range players {
		c := counts[players[i].ID]
		if c >= result.MajorityThreshold {
			result.MajorityReached = true
			result.MajorityTargetID = players[i].ID
			break
		}
		if c > result.HighestCount {
			result.HighestCount = c
			result.HighestTargetID = players[i].ID
		}
	}

	// everyone voted but the votes split: conclude on the highest count so
	// the round cannot stall
	if !result.MajorityReached && result.AllVoted && result.TotalVotes >= 2 && result.HighestTargetID != uuid.Nil {
		result.MajorityReached = true
		result.Forced = true
		result.MajorityTargetID = result.HighestTargetID
	}

	if result.MajorityReached && result.Imposter != nil {
		result.ImposterCaught = result.MajorityTargetID == result.Imposter.ID
	}
	return result, nil
}

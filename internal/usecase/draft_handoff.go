package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/domain/roster"
	"github.com/riskibarqy/league-draft/internal/domain/waiver"
)

// handOff materialises completed picks onto rosters. Every step is
// idempotent so a partial hand-off can simply be retried.
func (s *DraftService) handOff(ctx context.Context, session draft.Session, records []draft.PickRecord) error {
	err := s.forEachParticipant(ctx, records, func(ctx context.Context, record draft.PickRecord) error {
		acquiredAt := s.clock.Now().UTC()
		if record.AssignedAt != nil {
			acquiredAt = *record.AssignedAt
		}

		if session.Mode == draft.ModeWaiver {
			if err := s.waivers.Claim(ctx, waiver.Claim{
				Week:      session.Week,
				PlayerID:  record.SubjectID,
				ClaimedBy: record.ParticipantID,
				SessionID: session.ID,
				ClaimedAt: acquiredAt,
			}); err != nil {
				return fmt.Errorf("claim waived player=%s: %w", record.SubjectID, err)
			}
		}

		if err := s.roster.AssignOwner(ctx, roster.Ownership{
			PlayerID:   record.SubjectID,
			OwnerID:    record.ParticipantID,
			SessionID:  session.ID,
			AcquiredAt: acquiredAt,
		}); err != nil {
			return fmt.Errorf("assign owner player=%s: %w", record.SubjectID, err)
		}
		return nil
	})
	s.invalidateCandidates(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "draft hand-off failed", "session_id", session.ID, "error", err)
		return storageErr("hand off draft picks", err)
	}

	s.logger.InfoContext(ctx, "draft picks handed off", "session_id", session.ID, "picks", len(records))
	return nil
}

// revertHandOff undoes what handOff wrote for this session. Ownership that
// another session wrote since is left alone.
func (s *DraftService) revertHandOff(ctx context.Context, session draft.Session, records []draft.PickRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := s.forEachParticipant(ctx, records, func(ctx context.Context, record draft.PickRecord) error {
		if session.Mode == draft.ModeSnake {
			if err := s.roster.ReleaseOwner(ctx, record.SubjectID, session.ID); err != nil {
				return fmt.Errorf("release owner player=%s: %w", record.SubjectID, err)
			}
			return nil
		}

		waived, ok, err := s.waivers.Get(ctx, session.Week, record.SubjectID)
		if err != nil {
			return fmt.Errorf("get waived player=%s: %w", record.SubjectID, err)
		}
		if !ok {
			return nil
		}
		if err := s.waivers.Unclaim(ctx, session.Week, record.SubjectID, session.ID); err != nil {
			return fmt.Errorf("unclaim waived player=%s: %w", record.SubjectID, err)
		}

		player, ok, err := s.roster.GetByID(ctx, record.SubjectID)
		if err != nil {
			return fmt.Errorf("get player=%s: %w", record.SubjectID, err)
		}
		if !ok || player.OwnerSessionID != session.ID {
			return nil
		}
		if err := s.roster.AssignOwner(ctx, roster.Ownership{
			PlayerID:   record.SubjectID,
			OwnerID:    waived.WaivedBy,
			AcquiredAt: s.clock.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("restore owner player=%s: %w", record.SubjectID, err)
		}
		return nil
	})
	s.invalidateCandidates(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "draft hand-off revert failed", "session_id", session.ID, "error", err)
		return storageErr("revert draft hand-off", err)
	}

	s.logger.InfoContext(ctx, "draft hand-off reverted", "session_id", session.ID, "picks", len(records))
	return nil
}

// forEachParticipant fans records out on a worker pool, one task per
// participant. A participant's records are applied in slot order.
func (s *DraftService) forEachParticipant(
	ctx context.Context,
	records []draft.PickRecord,
	fn func(context.Context, draft.PickRecord) error,
) error {
	if len(records) == 0 {
		return nil
	}

	byParticipant := make(map[string][]draft.PickRecord)
	for _, record := range records {
		byParticipant[record.ParticipantID] = append(byParticipant[record.ParticipantID], record)
	}
	participants := make([]string, 0, len(byParticipant))
	for participantID := range byParticipant {
		participants = append(participants, participantID)
	}
	sort.Strings(participants)

	workerPool, err := ants.NewPool(min(s.cfg.HandoffWorkers, len(participants)))
	if err != nil {
		return fmt.Errorf("create hand-off worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu      sync.Mutex
		errs    []error
		workers sync.WaitGroup
	)
	for _, participantID := range participants {
		owned := byParticipant[participantID]
		sort.Slice(owned, func(i, j int) bool { return owned[i].Slot().Less(owned[j].Slot()) })

		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			for _, record := range owned {
				if err := fn(ctx, record); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("participant=%s: %w", participantID, err))
					mu.Unlock()
					return
				}
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit hand-off task: %w", err)
		}
	}
	workers.Wait()

	return errors.Join(errs...)
}

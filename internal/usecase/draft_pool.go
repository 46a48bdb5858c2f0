package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/platform/cache"
	"github.com/sourcegraph/conc/pool"
)

const candidateCachePrefix = "draft:candidates:"

// Snapshot is the read model for viewers. It is safe at any polling rate and
// always recomputes the turn from the ledger.
func (s *DraftService) Snapshot(ctx context.Context, sessionID string) (draft.Snapshot, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.Snapshot", sessionAttr(sessionID))
	defer span.End()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return draft.Snapshot{}, err
	}

	var (
		slots      []draft.PickRecord
		candidates []draft.Candidate
		clockState draft.ClockState
		hasClock   bool
	)
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		records, err := s.ledger.ListSlots(ctx, session.ID)
		if err != nil {
			return storageErr("list draft slots", err)
		}
		slots = records
		return nil
	})
	p.Go(func(ctx context.Context) error {
		loaded, err := s.externalCandidates(ctx, session)
		if err != nil {
			return err
		}
		candidates = loaded
		return nil
	})
	p.Go(func(ctx context.Context) error {
		state, ok, err := s.clocks.Load(ctx, session.ID)
		if err != nil {
			return storageErr("load turn clock", err)
		}
		clockState, hasClock = state, ok
		return nil
	})
	if err := p.Wait(); err != nil {
		return draft.Snapshot{}, err
	}

	if !hasClock {
		clockState, err = s.loadClock(ctx, session, slots)
		if err != nil {
			return draft.Snapshot{}, err
		}
	}

	seq := draft.RecoverSequencer(slots)
	snapshot := draft.Snapshot{
		Session:     session,
		Slots:       slots,
		Pool:        excludeDrafted(candidates, slots),
		FilledCount: countFilled(slots),
		TotalSlots:  seq.Total(),
	}
	if turn, ok := seq.CurrentTurn(); ok && session.Status == draft.StatusInProgress {
		snapshot.CurrentTurn = &turn
	}
	running := session.Status == draft.StatusInProgress && !seq.Done()
	snapshot.Clock = clockState.View(s.clock.Now().UTC(), running)

	return snapshot, nil
}

// checkEligible reads the collaborators directly so eligibility never depends
// on a cached list.
func (s *DraftService) checkEligible(ctx context.Context, session draft.Session, subjectID string) error {
	switch session.Mode {
	case draft.ModeSnake:
		player, ok, err := s.roster.GetByID(ctx, subjectID)
		if err != nil {
			return storageErr("get player", err)
		}
		if !ok || player.Owned() {
			return fmt.Errorf("%w: player=%s is not available", draft.ErrSubjectNotEligible, subjectID)
		}
	case draft.ModeWaiver:
		waived, ok, err := s.waivers.Get(ctx, session.Week, subjectID)
		if err != nil {
			return storageErr("get waived player", err)
		}
		if !ok || waived.Claimed() {
			return fmt.Errorf("%w: player=%s is not waived in week %d", draft.ErrSubjectNotEligible, subjectID, session.Week)
		}
	default:
		return fmt.Errorf("%w: unknown draft mode %q", ErrInvalidInput, session.Mode)
	}
	return nil
}

// externalCandidates is the collaborator side of the pool, before removing
// players already drafted in this session.
func (s *DraftService) externalCandidates(ctx context.Context, session draft.Session) ([]draft.Candidate, error) {
	switch session.Mode {
	case draft.ModeSnake:
		return cache.Load(ctx, s.cache, candidateCachePrefix+"snake", s.loadUnownedCandidates)
	case draft.ModeWaiver:
		week := session.Week
		return cache.Load(ctx, s.cache, candidateCachePrefix+"waiver:"+strconv.Itoa(week), func(ctx context.Context) ([]draft.Candidate, error) {
			return s.loadWaiverCandidates(ctx, week)
		})
	default:
		return nil, fmt.Errorf("%w: unknown draft mode %q", ErrInvalidInput, session.Mode)
	}
}

func (s *DraftService) loadUnownedCandidates(ctx context.Context) ([]draft.Candidate, error) {
	players, err := s.roster.ListUnowned(ctx)
	if err != nil {
		return nil, storageErr("list unowned players", err)
	}

	out := make([]draft.Candidate, 0, len(players))
	for _, p := range players {
		out = append(out, draft.Candidate{
			SubjectID: p.ID,
			Name:      p.Name,
			Position:  p.Position,
			TeamName:  p.TeamName,
		})
	}
	return out, nil
}

func (s *DraftService) loadWaiverCandidates(ctx context.Context, week int) ([]draft.Candidate, error) {
	waived, err := s.waivers.ListByWeek(ctx, week)
	if err != nil {
		return nil, storageErr("list waived players", err)
	}

	out := make([]draft.Candidate, 0, len(waived))
	for _, w := range waived {
		if w.Claimed() {
			continue
		}
		out = append(out, draft.Candidate{
			SubjectID: w.PlayerID,
			Name:      w.PlayerName,
			Position:  w.Position,
			TeamName:  w.TeamName,
			WaivedBy:  w.WaivedBy,
			Priority:  w.Priority,
		})
	}
	return out, nil
}

func (s *DraftService) invalidateCandidates(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, candidateCachePrefix)
}

func excludeDrafted(candidates []draft.Candidate, slots []draft.PickRecord) []draft.Candidate {
	drafted := make(map[string]struct{}, len(slots))
	for _, record := range slots {
		if record.Filled() {
			drafted[record.SubjectID] = struct{}{}
		}
	}

	out := make([]draft.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := drafted[c.SubjectID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func countFilled(slots []draft.PickRecord) int {
	count := 0
	for _, record := range slots {
		if record.Filled() {
			count++
		}
	}
	return count
}

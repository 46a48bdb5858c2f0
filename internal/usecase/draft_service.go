package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/domain/roster"
	"github.com/riskibarqy/league-draft/internal/domain/user"
	"github.com/riskibarqy/league-draft/internal/domain/waiver"
	"github.com/riskibarqy/league-draft/internal/platform/cache"
	idgen "github.com/riskibarqy/league-draft/internal/platform/id"
	"github.com/riskibarqy/league-draft/internal/platform/keylock"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
)

const defaultHandoffWorkers = 4

type DraftServiceConfig struct {
	SnakeTurnDuration  time.Duration
	WaiverTurnDuration time.Duration
	HandoffWorkers     int
}

type DraftServiceDeps struct {
	Sessions draft.SessionRepository
	Ledger   draft.Ledger
	Clocks   draft.ClockStore
	Roster   roster.Repository
	Waivers  waiver.Repository
	IDGen    idgen.Generator
	// Cache holds external candidate lists. Nil disables caching.
	Cache  *cache.Store
	Policy TimeoutPolicy
	Clock  clockwork.Clock
	Logger *logging.Logger
}

type CreateDraftSessionInput struct {
	Name       string
	Mode       draft.Mode
	Week       int
	RoundCount int
	// BaseOrder is used by snake sessions.
	BaseOrder []string
	// Sequence is used by waiver sessions.
	Sequence []draft.OrderEntry
}

// SubmitPickInput optionally carries the slot the caller believes is on the
// clock. Zero Round and Pick skip that check.
type SubmitPickInput struct {
	SessionID string
	SubjectID string
	Round     int
	Pick      int
}

type ClearDraftInput struct {
	SessionID string
	Confirm   bool
}

type PickResult struct {
	Record   draft.PickRecord
	Session  draft.Session
	NextTurn *draft.Turn
}

type UndoResult struct {
	Removed     draft.PickRecord
	Session     draft.Session
	CurrentTurn *draft.Turn
}

// DraftService is the session controller. Every mutation runs under a
// per-session lock and re-derives the turn pointer from the ledger.
type DraftService struct {
	sessions draft.SessionRepository
	ledger   draft.Ledger
	clocks   draft.ClockStore
	roster   roster.Repository
	waivers  waiver.Repository
	idGen    idgen.Generator
	cache    *cache.Store
	policy   TimeoutPolicy
	clock    clockwork.Clock
	logger   *logging.Logger
	locks    *keylock.Locker
	timers   *turnTimers
	cfg      DraftServiceConfig
}

func NewDraftService(deps DraftServiceDeps, cfg DraftServiceConfig) *DraftService {
	if cfg.SnakeTurnDuration <= 0 {
		cfg.SnakeTurnDuration = draft.DefaultSnakeTurnDuration
	}
	if cfg.WaiverTurnDuration <= 0 {
		cfg.WaiverTurnDuration = draft.DefaultWaiverTurnDuration
	}
	if cfg.HandoffWorkers <= 0 {
		cfg.HandoffWorkers = defaultHandoffWorkers
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	policy := deps.Policy
	if policy == nil {
		policy = NewWarnOnTimeout(logger)
	}
	gen := deps.IDGen
	if gen == nil {
		gen = idgen.NewUUIDGenerator()
	}

	return &DraftService{
		sessions: deps.Sessions,
		ledger:   deps.Ledger,
		clocks:   deps.Clocks,
		roster:   deps.Roster,
		waivers:  deps.Waivers,
		idGen:    gen,
		cache:    deps.Cache,
		policy:   policy,
		clock:    clock,
		logger:   logger.Named("draft"),
		locks:    keylock.New(),
		timers:   newTurnTimers(clock),
		cfg:      cfg,
	}
}

// Close stops every pending turn timer.
func (s *DraftService) Close() {
	s.timers.stopAll()
}

func (s *DraftService) CreateSession(ctx context.Context, principal user.Principal, input CreateDraftSessionInput) (draft.Session, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.CreateSession")
	defer span.End()

	if err := requireAdmin(principal); err != nil {
		return draft.Session{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return draft.Session{}, fmt.Errorf("%w: session name is required", ErrInvalidInput)
	}

	var (
		order         []draft.OrderEntry
		roundCount    int
		picksPerRound int
		err           error
	)
	switch input.Mode {
	case draft.ModeSnake:
		order, err = draft.GenerateSnakeOrder(input.BaseOrder, input.RoundCount)
		roundCount, picksPerRound = input.RoundCount, len(input.BaseOrder)
		input.Week = 0
	case draft.ModeWaiver:
		if input.Week <= 0 {
			return draft.Session{}, fmt.Errorf("%w: waiver session week must be greater than zero", ErrInvalidInput)
		}
		order, err = draft.NormalizeCustomOrder(input.Sequence)
		roundCount, picksPerRound = draft.Dimensions(order)
	default:
		return draft.Session{}, fmt.Errorf("%w: unknown draft mode %q", ErrInvalidInput, input.Mode)
	}
	if err != nil {
		return draft.Session{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return draft.Session{}, fmt.Errorf("generate draft session id: %w", err)
	}

	now := s.clock.Now().UTC()
	session := draft.Session{
		ID:            sessionID,
		Name:          input.Name,
		Mode:          input.Mode,
		Status:        draft.StatusScheduled,
		Week:          input.Week,
		RoundCount:    roundCount,
		PicksPerRound: picksPerRound,
		CreatedBy:     principal.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := session.ValidateBasic(); err != nil {
		return draft.Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.sessions.Create(ctx, session, order); err != nil {
		return draft.Session{}, storageErr("create draft session", err)
	}
	if err := s.ledger.InitializeSlots(ctx, session.ID, order); err != nil {
		return draft.Session{}, storageErr("initialize draft slots", err)
	}

	s.logger.InfoContext(ctx, "draft session created",
		"session_id", session.ID,
		"mode", string(session.Mode),
		"week", session.Week,
		"slots", len(order),
		"created_by", principal.UserID,
	)
	return session, nil
}

func (s *DraftService) GetSession(ctx context.Context, sessionID string) (draft.Session, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.GetSession", sessionAttr(sessionID))
	defer span.End()

	return s.loadSession(ctx, sessionID)
}

func (s *DraftService) ListSessions(ctx context.Context) ([]draft.Session, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.ListSessions")
	defer span.End()

	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, storageErr("list draft sessions", err)
	}
	return sessions, nil
}

func (s *DraftService) Start(ctx context.Context, principal user.Principal, sessionID string) (draft.Session, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.Start", sessionAttr(sessionID))
	defer span.End()

	if err := requireAdmin(principal); err != nil {
		return draft.Session{}, err
	}
	unlock, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return draft.Session{}, err
	}
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return draft.Session{}, err
	}
	if session.Status != draft.StatusScheduled {
		return draft.Session{}, fmt.Errorf("%w: session is %s", draft.ErrAlreadyStarted, session.Status)
	}

	now := s.clock.Now().UTC()
	started, err := s.sessions.UpdateStatus(ctx, session.ID, draft.StatusScheduled, draft.StatusInProgress, now)
	if err != nil {
		if errors.Is(err, draft.ErrStatusConflict) {
			return draft.Session{}, fmt.Errorf("%w: %w", draft.ErrAlreadyStarted, err)
		}
		return draft.Session{}, storageErr("start draft session", err)
	}

	s.saveClock(ctx, started, draft.NewClockState(s.turnDuration(started.Mode), now))

	s.logger.InfoContext(ctx, "draft session started", "session_id", started.ID, "started_by", principal.UserID)
	return started, nil
}

func (s *DraftService) SubmitPick(ctx context.Context, principal user.Principal, input SubmitPickInput) (PickResult, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.SubmitPick", sessionAttr(input.SessionID))
	defer span.End()

	if err := requireAdmin(principal); err != nil {
		return PickResult{}, err
	}
	input.SubjectID = strings.TrimSpace(input.SubjectID)
	if input.SubjectID == "" {
		return PickResult{}, fmt.Errorf("%w: subject id is required", ErrInvalidInput)
	}
	if input.Round < 0 || input.Pick < 0 {
		return PickResult{}, fmt.Errorf("%w: round and pick must be >= 0", ErrInvalidInput)
	}

	unlock, err := s.lockSession(ctx, input.SessionID)
	if err != nil {
		return PickResult{}, err
	}
	defer unlock()

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return PickResult{}, err
	}
	if session.Status != draft.StatusInProgress {
		return PickResult{}, fmt.Errorf("%w: session is %s", draft.ErrSessionNotInProgress, session.Status)
	}

	slots, err := s.ledger.ListSlots(ctx, session.ID)
	if err != nil {
		return PickResult{}, storageErr("list draft slots", err)
	}
	seq := draft.RecoverSequencer(slots)
	if seq.Done() {
		// Every slot is filled but the session never reached completed.
		completed, err := s.complete(ctx, session, filledRecords(slots))
		if err != nil {
			return PickResult{}, err
		}
		return PickResult{Session: completed}, fmt.Errorf("%w: all slots are filled, session completed", draft.ErrSessionNotInProgress)
	}
	if input.Round != 0 || input.Pick != 0 {
		if err := seq.ValidateIsCurrentTurn(input.Round, input.Pick); err != nil {
			return PickResult{}, err
		}
	}
	turn, _ := seq.CurrentTurn()

	if err := s.checkEligible(ctx, session, input.SubjectID); err != nil {
		return PickResult{}, err
	}

	now := s.clock.Now().UTC()
	record, err := s.ledger.Assign(ctx, session.ID, turn.Round, turn.Pick, input.SubjectID, now)
	if err != nil {
		return PickResult{}, storageErr("assign draft pick", err)
	}

	s.logger.InfoContext(ctx, "draft pick submitted",
		"session_id", session.ID,
		"round", record.Round,
		"pick", record.Pick,
		"participant_id", record.ParticipantID,
		"subject_id", record.SubjectID,
	)

	result := PickResult{Record: record, Session: session}
	if !seq.Advance() {
		slots = markFilled(slots, record)
		completed, err := s.complete(ctx, session, filledRecords(slots))
		if err != nil {
			return PickResult{}, err
		}
		result.Session = completed
		return result, nil
	}

	next, _ := seq.CurrentTurn()
	result.NextTurn = &next
	s.resetClock(ctx, session, now)
	return result, nil
}

func (s *DraftService) UndoLastPick(ctx context.Context, principal user.Principal, sessionID string) (UndoResult, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.UndoLastPick", sessionAttr(sessionID))
	defer span.End()

	if err := requireAdmin(principal); err != nil {
		return UndoResult{}, err
	}
	unlock, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return UndoResult{}, err
	}
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return UndoResult{}, err
	}
	if session.Status == draft.StatusScheduled {
		return UndoResult{}, fmt.Errorf("%w: session is %s", draft.ErrSessionNotInProgress, session.Status)
	}

	slots, err := s.ledger.ListSlots(ctx, session.ID)
	if err != nil {
		return UndoResult{}, storageErr("list draft slots", err)
	}
	last, ok, err := s.ledger.FindLastFilled(ctx, session.ID)
	if err != nil {
		return UndoResult{}, storageErr("find last filled pick", err)
	}
	if !ok {
		return UndoResult{}, draft.ErrNothingToUndo
	}

	// A completed or fully filled session may already be handed off; reopen
	// first so a failure below leaves an in-progress session to retry on.
	handedOff := session.Status == draft.StatusCompleted || draft.RecoverSequencer(slots).Done()
	if session.Status == draft.StatusCompleted {
		session, err = s.reopen(ctx, session)
		if err != nil {
			return UndoResult{}, err
		}
	}
	if handedOff {
		if err := s.revertHandOff(ctx, session, filledRecords(slots)); err != nil {
			return UndoResult{}, err
		}
	}

	removed, err := s.ledger.Unassign(ctx, session.ID, last.Round, last.Pick)
	if err != nil {
		return UndoResult{}, storageErr("unassign draft pick", err)
	}

	now := s.clock.Now().UTC()
	s.resetClock(ctx, session, now)

	s.logger.InfoContext(ctx, "draft pick undone",
		"session_id", session.ID,
		"round", removed.Round,
		"pick", removed.Pick,
		"participant_id", removed.ParticipantID,
		"subject_id", removed.SubjectID,
	)

	seq := draft.RecoverSequencer(markEmpty(slots, removed))
	result := UndoResult{Removed: removed, Session: session}
	if turn, ok := seq.CurrentTurn(); ok {
		result.CurrentTurn = &turn
	}
	return result, nil
}

func (s *DraftService) Clear(ctx context.Context, principal user.Principal, input ClearDraftInput) (draft.Session, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.Clear", sessionAttr(input.SessionID))
	defer span.End()

	if err := requireAdmin(principal); err != nil {
		return draft.Session{}, err
	}
	if !input.Confirm {
		return draft.Session{}, fmt.Errorf("%w: clearing a draft removes every pick", draft.ErrConfirmationRequired)
	}

	unlock, err := s.lockSession(ctx, input.SessionID)
	if err != nil {
		return draft.Session{}, err
	}
	defer unlock()

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return draft.Session{}, err
	}
	if session.Status == draft.StatusScheduled {
		return draft.Session{}, fmt.Errorf("%w: session is %s", draft.ErrSessionNotInProgress, session.Status)
	}

	if session.Status == draft.StatusCompleted {
		session, err = s.reopen(ctx, session)
		if err != nil {
			return draft.Session{}, err
		}
	}

	filled, err := s.ledger.ListFilled(ctx, session.ID)
	if err != nil {
		return draft.Session{}, storageErr("list filled picks", err)
	}
	if err := s.revertHandOff(ctx, session, filled); err != nil {
		return draft.Session{}, err
	}

	cleared, err := s.ledger.ClearAll(ctx, session.ID)
	if err != nil {
		return draft.Session{}, storageErr("clear draft picks", err)
	}

	s.resetClock(ctx, session, s.clock.Now().UTC())

	s.logger.InfoContext(ctx, "draft cleared",
		"session_id", session.ID,
		"cleared_picks", len(cleared),
		"cleared_by", principal.UserID,
	)
	return session, nil
}

// Complete ends a waiver session with the slots filled so far.
func (s *DraftService) Complete(ctx context.Context, principal user.Principal, sessionID string) (draft.Session, error) {
	ctx, span := startSpan(ctx, "usecase.DraftService.Complete", sessionAttr(sessionID))
	defer span.End()

	if err := requireAdmin(principal); err != nil {
		return draft.Session{}, err
	}
	unlock, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return draft.Session{}, err
	}
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return draft.Session{}, err
	}
	if session.Mode != draft.ModeWaiver {
		return draft.Session{}, fmt.Errorf("%w: explicit completion is only available for waiver sessions", ErrInvalidInput)
	}
	if session.Status != draft.StatusInProgress {
		return draft.Session{}, fmt.Errorf("%w: session is %s", draft.ErrSessionNotInProgress, session.Status)
	}

	filled, err := s.ledger.ListFilled(ctx, session.ID)
	if err != nil {
		return draft.Session{}, storageErr("list filled picks", err)
	}
	return s.complete(ctx, session, filled)
}

// complete hands the picks off before flipping the status, so a failed
// hand-off leaves the session in progress and the next call retries it.
func (s *DraftService) complete(ctx context.Context, session draft.Session, filled []draft.PickRecord) (draft.Session, error) {
	if err := s.handOff(ctx, session, filled); err != nil {
		return draft.Session{}, err
	}

	completed, err := s.sessions.UpdateStatus(ctx, session.ID, draft.StatusInProgress, draft.StatusCompleted, s.clock.Now().UTC())
	if err != nil {
		return draft.Session{}, storageErr("complete draft session", err)
	}

	s.dropClock(ctx, completed)
	s.logger.InfoContext(ctx, "draft session completed", "session_id", completed.ID, "picks", len(filled))
	return completed, nil
}

func (s *DraftService) reopen(ctx context.Context, session draft.Session) (draft.Session, error) {
	reopened, err := s.sessions.UpdateStatus(ctx, session.ID, draft.StatusCompleted, draft.StatusInProgress, s.clock.Now().UTC())
	if err != nil {
		return draft.Session{}, storageErr("reopen draft session", err)
	}
	s.logger.InfoContext(ctx, "draft session reopened", "session_id", reopened.ID)
	return reopened, nil
}

func (s *DraftService) loadSession(ctx context.Context, sessionID string) (draft.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return draft.Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	session, ok, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return draft.Session{}, storageErr("get draft session", err)
	}
	if !ok {
		return draft.Session{}, fmt.Errorf("%w: session=%s", draft.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func (s *DraftService) lockSession(ctx context.Context, sessionID string) (func(), error) {
	unlock, err := s.locks.Lock(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, fmt.Errorf("acquire draft session lock: %w", err)
	}
	return unlock, nil
}

func (s *DraftService) turnDuration(mode draft.Mode) time.Duration {
	if mode == draft.ModeWaiver {
		return s.cfg.WaiverTurnDuration
	}
	return s.cfg.SnakeTurnDuration
}

func requireAdmin(principal user.Principal) error {
	if !principal.IsAdmin {
		return draft.ErrPermissionDenied
	}
	return nil
}

func filledRecords(records []draft.PickRecord) []draft.PickRecord {
	out := make([]draft.PickRecord, 0, len(records))
	for _, record := range records {
		if record.Filled() {
			out = append(out, record)
		}
	}
	return out
}

func markFilled(records []draft.PickRecord, filled draft.PickRecord) []draft.PickRecord {
	out := append([]draft.PickRecord(nil), records...)
	for i := range out {
		if out[i].Slot() == filled.Slot() {
			out[i] = filled
		}
	}
	return out
}

func markEmpty(records []draft.PickRecord, removed draft.PickRecord) []draft.PickRecord {
	out := append([]draft.PickRecord(nil), records...)
	for i := range out {
		if out[i].Slot() == removed.Slot() {
			out[i].SubjectID = ""
			out[i].AssignedAt = nil
		}
	}
	return out
}

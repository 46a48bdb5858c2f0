package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	qb "github.com/riskibarqy/league-draft/internal/platform/querybuilder"
)

// DraftLedger stores pick records in draft_picks. Every mutation runs in its
// own transaction with the touched rows locked.
type DraftLedger struct {
	db *sqlx.DB
}

func NewDraftLedger(db *sqlx.DB) *DraftLedger {
	return &DraftLedger{db: db}
}

func (l *DraftLedger) InitializeSlots(ctx context.Context, sessionID string, order []draft.OrderEntry) error {
	if len(order) == 0 {
		return fmt.Errorf("%w: no slots to initialize", draft.ErrInvalidOrder)
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for initialize slots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(1) FROM draft_picks WHERE session_public_id = $1`, sessionID); err != nil {
		return fmt.Errorf("count draft slots: %w", err)
	}
	if count > 0 {
		return draft.ErrSlotsAlreadyInitialized
	}

	builder := qb.InsertInto(draftPicksTable).Columns("session_public_id", "round", "pick", "participant_id")
	for _, entry := range order {
		builder.Values(sessionID, entry.Round, entry.Pick, entry.ParticipantID)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert draft slots query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, draftPicksPKey) {
			return draft.ErrSlotsAlreadyInitialized
		}
		return fmt.Errorf("insert draft slots session=%s: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit initialize slots tx: %w", err)
	}
	return nil
}

func (l *DraftLedger) Assign(ctx context.Context, sessionID string, round, pick int, subjectID string, at time.Time) (draft.PickRecord, error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return draft.PickRecord{}, fmt.Errorf("begin tx for assign pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := lockSlot(ctx, tx, sessionID, round, pick)
	if err != nil {
		return draft.PickRecord{}, err
	}
	if current.SubjectID.Valid {
		return draft.PickRecord{}, draft.ErrSlotAlreadyFilled
	}

	query, args, err := qb.Update(draftPicksTable).
		Set("subject_id", subjectID).
		Set("assigned_at", at).
		Where(
			qb.Eq("session_public_id", sessionID),
			qb.Eq("round", round),
			qb.Eq("pick", pick),
		).
		Suffix("RETURNING " + joinColumns(draftPickColumns)).
		ToSQL()
	if err != nil {
		return draft.PickRecord{}, fmt.Errorf("build assign pick query: %w", err)
	}

	var row draftPickTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err, subjectUniqueIndex) {
			return draft.PickRecord{}, draft.ErrSubjectAlreadyAssigned
		}
		return draft.PickRecord{}, fmt.Errorf("assign pick %s: %w", draft.Slot{Round: round, Pick: pick}, err)
	}

	if err := tx.Commit(); err != nil {
		return draft.PickRecord{}, fmt.Errorf("commit assign pick tx: %w", err)
	}
	return pickFromRow(row), nil
}

func (l *DraftLedger) Unassign(ctx context.Context, sessionID string, round, pick int) (draft.PickRecord, error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return draft.PickRecord{}, fmt.Errorf("begin tx for unassign pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := lockSlot(ctx, tx, sessionID, round, pick)
	if err != nil {
		return draft.PickRecord{}, err
	}
	if !current.SubjectID.Valid {
		return draft.PickRecord{}, draft.ErrSlotAlreadyEmpty
	}

	query, args, err := qb.Update(draftPicksTable).
		Set("subject_id", nil).
		Set("assigned_at", nil).
		Where(
			qb.Eq("session_public_id", sessionID),
			qb.Eq("round", round),
			qb.Eq("pick", pick),
		).
		ToSQL()
	if err != nil {
		return draft.PickRecord{}, fmt.Errorf("build unassign pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return draft.PickRecord{}, fmt.Errorf("unassign pick %s: %w", draft.Slot{Round: round, Pick: pick}, err)
	}

	if err := tx.Commit(); err != nil {
		return draft.PickRecord{}, fmt.Errorf("commit unassign pick tx: %w", err)
	}
	return pickFromRow(current), nil
}

func (l *DraftLedger) ClearAll(ctx context.Context, sessionID string) ([]draft.PickRecord, error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx for clear picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select(draftPickColumns...).From(draftPicksTable).
		Where(
			qb.Eq("session_public_id", sessionID),
			qb.IsNotNull("subject_id"),
		).
		OrderBy("round", "pick").
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock filled picks query: %w", err)
	}
	var rows []draftPickTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("lock filled picks: %w", err)
	}

	query, args, err = qb.Update(draftPicksTable).
		Set("subject_id", nil).
		Set("assigned_at", nil).
		Where(
			qb.Eq("session_public_id", sessionID),
			qb.IsNotNull("subject_id"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build clear picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("clear picks session=%s: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit clear picks tx: %w", err)
	}
	return picksFromRows(rows), nil
}

func (l *DraftLedger) ListSlots(ctx context.Context, sessionID string) ([]draft.PickRecord, error) {
	return l.list(ctx, sessionID, false)
}

func (l *DraftLedger) ListFilled(ctx context.Context, sessionID string) ([]draft.PickRecord, error) {
	return l.list(ctx, sessionID, true)
}

func (l *DraftLedger) FindLastFilled(ctx context.Context, sessionID string) (draft.PickRecord, bool, error) {
	query, args, err := qb.Select(draftPickColumns...).From(draftPicksTable).
		Where(
			qb.Eq("session_public_id", sessionID),
			qb.IsNotNull("subject_id"),
		).
		OrderBy("round DESC", "pick DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return draft.PickRecord{}, false, fmt.Errorf("build find last filled query: %w", err)
	}

	var row draftPickTableModel
	if err := l.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.PickRecord{}, false, nil
		}
		return draft.PickRecord{}, false, fmt.Errorf("find last filled pick: %w", err)
	}
	return pickFromRow(row), true, nil
}

func (l *DraftLedger) list(ctx context.Context, sessionID string, filledOnly bool) ([]draft.PickRecord, error) {
	conditions := []qb.Condition{qb.Eq("session_public_id", sessionID)}
	if filledOnly {
		conditions = append(conditions, qb.IsNotNull("subject_id"))
	}
	query, args, err := qb.Select(draftPickColumns...).From(draftPicksTable).
		Where(conditions...).
		OrderBy("round", "pick").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []draftPickTableModel
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}
	return picksFromRows(rows), nil
}

func lockSlot(ctx context.Context, tx *sqlx.Tx, sessionID string, round, pick int) (draftPickTableModel, error) {
	query, args, err := qb.Select(draftPickColumns...).From(draftPicksTable).
		Where(
			qb.Eq("session_public_id", sessionID),
			qb.Eq("round", round),
			qb.Eq("pick", pick),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		return draftPickTableModel{}, fmt.Errorf("build lock slot query: %w", err)
	}

	var row draftPickTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draftPickTableModel{}, draft.ErrSlotNotFound
		}
		return draftPickTableModel{}, fmt.Errorf("lock slot %s: %w", draft.Slot{Round: round, Pick: pick}, err)
	}
	return row, nil
}

func pickFromRow(row draftPickTableModel) draft.PickRecord {
	return draft.PickRecord{
		SessionID:     row.SessionID,
		Round:         row.Round,
		Pick:          row.Pick,
		ParticipantID: row.ParticipantID,
		SubjectID:     nullString(row.SubjectID),
		AssignedAt:    nullTimePtr(row.AssignedAt),
	}
}

func picksFromRows(rows []draftPickTableModel) []draft.PickRecord {
	out := make([]draft.PickRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out
}

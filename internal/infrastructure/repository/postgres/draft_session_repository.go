package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	qb "github.com/riskibarqy/league-draft/internal/platform/querybuilder"
)

type DraftSessionRepository struct {
	db *sqlx.DB
}

func NewDraftSessionRepository(db *sqlx.DB) *DraftSessionRepository {
	return &DraftSessionRepository{db: db}
}

// Create stores the session and its order entries in one transaction.
func (r *DraftSessionRepository) Create(ctx context.Context, session draft.Session, order []draft.OrderEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for draft session create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := draftSessionInsertModel{
		PublicID:      session.ID,
		Name:          session.Name,
		Mode:          string(session.Mode),
		Status:        string(session.Status),
		Week:          sql.NullInt64{Int64: int64(session.Week), Valid: session.Mode == draft.ModeWaiver},
		RoundCount:    session.RoundCount,
		PicksPerRound: session.PicksPerRound,
		CreatedBy:     session.CreatedBy,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}
	query, args, err := qb.InsertModel(draftSessionsTable, insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert draft session query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("draft session %s already exists: %w", session.ID, err)
		}
		return fmt.Errorf("insert draft session: %w", err)
	}

	if len(order) > 0 {
		builder := qb.InsertInto(draftOrderTable).Columns("session_public_id", "round", "pick", "participant_id")
		for _, entry := range order {
			builder.Values(session.ID, entry.Round, entry.Pick, entry.ParticipantID)
		}
		query, args, err = builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert draft order query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert draft order session=%s: %w", session.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draft session create tx: %w", err)
	}
	return nil
}

func (r *DraftSessionRepository) GetByID(ctx context.Context, sessionID string) (draft.Session, bool, error) {
	query, args, err := qb.Select(draftSessionColumns...).From(draftSessionsTable).
		Where(qb.Eq("public_id", sessionID)).
		ToSQL()
	if err != nil {
		return draft.Session{}, false, fmt.Errorf("build get draft session query: %w", err)
	}

	var row draftSessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Session{}, false, nil
		}
		return draft.Session{}, false, fmt.Errorf("get draft session: %w", err)
	}

	return sessionFromRow(row), true, nil
}

func (r *DraftSessionRepository) List(ctx context.Context) ([]draft.Session, error) {
	query, args, err := qb.Select(draftSessionColumns...).From(draftSessionsTable).
		OrderBy("created_at DESC", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft sessions query: %w", err)
	}

	var rows []draftSessionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft sessions: %w", err)
	}

	out := make([]draft.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, sessionFromRow(row))
	}
	return out, nil
}

func (r *DraftSessionRepository) ListOrder(ctx context.Context, sessionID string) ([]draft.OrderEntry, error) {
	query, args, err := qb.Select("session_public_id", "round", "pick", "participant_id").From(draftOrderTable).
		Where(qb.Eq("session_public_id", sessionID)).
		OrderBy("round", "pick").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft order query: %w", err)
	}

	var rows []draftOrderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft order: %w", err)
	}

	out := make([]draft.OrderEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, draft.OrderEntry{Round: row.Round, Pick: row.Pick, ParticipantID: row.ParticipantID})
	}
	return out, nil
}

// UpdateStatus is a compare-and-swap on the status column.
func (r *DraftSessionRepository) UpdateStatus(ctx context.Context, sessionID string, from, to draft.Status, at time.Time) (draft.Session, error) {
	builder := qb.Update(draftSessionsTable).
		Set("status", string(to)).
		Set("updated_at", at)
	switch to {
	case draft.StatusInProgress:
		builder.SetExpr("started_at", "COALESCE(started_at, ?)", at).
			Set("completed_at", nil)
	case draft.StatusCompleted:
		builder.Set("completed_at", at)
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", sessionID),
			qb.Eq("status", string(from)),
		).
		Suffix("RETURNING " + joinColumns(draftSessionColumns)).
		ToSQL()
	if err != nil {
		return draft.Session{}, fmt.Errorf("build update draft session status query: %w", err)
	}

	var row draftSessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return draft.Session{}, fmt.Errorf("update draft session status: %w", err)
		}
		current, ok, getErr := r.GetByID(ctx, sessionID)
		if getErr != nil {
			return draft.Session{}, getErr
		}
		if !ok {
			return draft.Session{}, draft.ErrSessionNotFound
		}
		return draft.Session{}, fmt.Errorf("%w: expected %s, found %s", draft.ErrStatusConflict, from, current.Status)
	}

	return sessionFromRow(row), nil
}

func sessionFromRow(row draftSessionTableModel) draft.Session {
	return draft.Session{
		ID:            row.PublicID,
		Name:          row.Name,
		Mode:          draft.Mode(row.Mode),
		Status:        draft.Status(row.Status),
		Week:          nullInt(row.Week),
		RoundCount:    row.RoundCount,
		PicksPerRound: row.PicksPerRound,
		CreatedBy:     row.CreatedBy,
		StartedAt:     utcPtr(row.StartedAt),
		CompletedAt:   utcPtr(row.CompletedAt),
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}

func utcPtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	t := v.UTC()
	return &t
}

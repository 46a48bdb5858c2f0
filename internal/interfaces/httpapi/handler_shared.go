package httpapi

import (
	"time"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/usecase"
)

type createDraftSessionRequest struct {
	Name       string              `json:"name" validate:"required,max=100"`
	Mode       string              `json:"mode" validate:"required,oneof=snake waiver"`
	Week       int                 `json:"week" validate:"omitempty,gt=0"`
	RoundCount int                 `json:"round_count" validate:"omitempty,gt=0,lte=64"`
	BaseOrder  []string            `json:"base_order" validate:"omitempty,max=64,dive,required,max=64"`
	Sequence   []orderEntryRequest `json:"sequence" validate:"omitempty,max=1024,dive"`
}

type orderEntryRequest struct {
	Round         int    `json:"round" validate:"gt=0"`
	Pick          int    `json:"pick" validate:"gt=0"`
	ParticipantID string `json:"participant_id" validate:"required,max=64"`
}

type submitPickRequest struct {
	SubjectID string `json:"subject_id" validate:"required,max=64"`
	Round     int    `json:"round" validate:"gte=0"`
	Pick      int    `json:"pick" validate:"gte=0"`
}

type clearDraftRequest struct {
	Confirm bool `json:"confirm"`
}

type draftSessionDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Mode          string `json:"mode"`
	Status        string `json:"status"`
	Week          int    `json:"week,omitempty"`
	RoundCount    int    `json:"round_count"`
	PicksPerRound int    `json:"picks_per_round"`
	CreatedBy     string `json:"created_by"`
	StartedAt     string `json:"started_at,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type draftTurnDTO struct {
	Round         int    `json:"round"`
	Pick          int    `json:"pick"`
	Overall       int    `json:"overall"`
	ParticipantID string `json:"participant_id"`
}

type draftPickDTO struct {
	Round         int    `json:"round"`
	Pick          int    `json:"pick"`
	ParticipantID string `json:"participant_id"`
	SubjectID     string `json:"subject_id,omitempty"`
	AssignedAt    string `json:"assigned_at,omitempty"`
}

type draftCandidateDTO struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	TeamName  string `json:"team_name,omitempty"`
	WaivedBy  string `json:"waived_by,omitempty"`
	Priority  int    `json:"priority,omitempty"`
}

type draftClockDTO struct {
	DurationSeconds  int  `json:"duration_seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
	WarningRaised    bool `json:"warning_raised"`
	Paused           bool `json:"paused"`
	Running          bool `json:"running"`
}

type draftSnapshotDTO struct {
	Session     draftSessionDTO     `json:"session"`
	CurrentTurn *draftTurnDTO       `json:"current_turn"`
	Slots       []draftPickDTO      `json:"slots"`
	Pool        []draftCandidateDTO `json:"pool"`
	Clock       draftClockDTO       `json:"clock"`
	FilledCount int                 `json:"filled_count"`
	TotalSlots  int                 `json:"total_slots"`
}

type draftPickResultDTO struct {
	Record   draftPickDTO    `json:"record"`
	Session  draftSessionDTO `json:"session"`
	NextTurn *draftTurnDTO   `json:"next_turn"`
}

type draftUndoResultDTO struct {
	Removed     draftPickDTO    `json:"removed"`
	Session     draftSessionDTO `json:"session"`
	CurrentTurn *draftTurnDTO   `json:"current_turn"`
}

func draftSessionToDTO(v draft.Session) draftSessionDTO {
	return draftSessionDTO{
		ID:            v.ID,
		Name:          v.Name,
		Mode:          string(v.Mode),
		Status:        string(v.Status),
		Week:          v.Week,
		RoundCount:    v.RoundCount,
		PicksPerRound: v.PicksPerRound,
		CreatedBy:     v.CreatedBy,
		StartedAt:     formatOptionalTime(v.StartedAt),
		CompletedAt:   formatOptionalTime(v.CompletedAt),
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func draftTurnToDTO(v *draft.Turn) *draftTurnDTO {
	if v == nil {
		return nil
	}
	return &draftTurnDTO{
		Round:         v.Round,
		Pick:          v.Pick,
		Overall:       v.Overall,
		ParticipantID: v.ParticipantID,
	}
}

func draftPickToDTO(v draft.PickRecord) draftPickDTO {
	return draftPickDTO{
		Round:         v.Round,
		Pick:          v.Pick,
		ParticipantID: v.ParticipantID,
		SubjectID:     v.SubjectID,
		AssignedAt:    formatOptionalTime(v.AssignedAt),
	}
}

func draftClockToDTO(v draft.ClockView) draftClockDTO {
	return draftClockDTO{
		DurationSeconds:  v.DurationSeconds,
		RemainingSeconds: v.RemainingSeconds,
		WarningRaised:    v.WarningRaised,
		Paused:           v.Paused,
		Running:          v.Running,
	}
}

func draftSnapshotToDTO(v draft.Snapshot) draftSnapshotDTO {
	slots := make([]draftPickDTO, 0, len(v.Slots))
	for _, record := range v.Slots {
		slots = append(slots, draftPickToDTO(record))
	}
	pool := make([]draftCandidateDTO, 0, len(v.Pool))
	for _, c := range v.Pool {
		pool = append(pool, draftCandidateDTO{
			SubjectID: c.SubjectID,
			Name:      c.Name,
			Position:  c.Position,
			TeamName:  c.TeamName,
			WaivedBy:  c.WaivedBy,
			Priority:  c.Priority,
		})
	}

	return draftSnapshotDTO{
		Session:     draftSessionToDTO(v.Session),
		CurrentTurn: draftTurnToDTO(v.CurrentTurn),
		Slots:       slots,
		Pool:        pool,
		Clock:       draftClockToDTO(v.Clock),
		FilledCount: v.FilledCount,
		TotalSlots:  v.TotalSlots,
	}
}

func draftPickResultToDTO(v usecase.PickResult) draftPickResultDTO {
	return draftPickResultDTO{
		Record:   draftPickToDTO(v.Record),
		Session:  draftSessionToDTO(v.Session),
		NextTurn: draftTurnToDTO(v.NextTurn),
	}
}

func draftUndoResultToDTO(v usecase.UndoResult) draftUndoResultDTO {
	return draftUndoResultDTO{
		Removed:     draftPickToDTO(v.Removed),
		Session:     draftSessionToDTO(v.Session),
		CurrentTurn: draftTurnToDTO(v.CurrentTurn),
	}
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

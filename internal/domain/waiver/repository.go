package waiver

import "context"

type Repository interface {
	ListByWeek(ctx context.Context, week int) ([]WaivedPlayer, error)
	Get(ctx context.Context, week int, playerID string) (WaivedPlayer, bool, error)
	Claim(ctx context.Context, claim Claim) error
	// Unclaim reverts a claim written by the given session.
	Unclaim(ctx context.Context, week int, playerID, sessionID string) error
}

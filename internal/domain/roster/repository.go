package roster

import "context"

type Repository interface {
	ListUnowned(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	// AssignOwner sets or transfers ownership of a player.
	AssignOwner(ctx context.Context, ownership Ownership) error
	// ReleaseOwner undoes an ownership written by the given session. Players
	// owned through another session are left untouched.
	ReleaseOwner(ctx context.Context, playerID, sessionID string) error
}

package httpapi

import (
	"context"

	"github.com/riskibarqy/league-draft/internal/domain/user"
)

type contextKey int

const (
	principalKey contextKey = iota
	requestMetaKey
)

// requestMeta is shared by pointer so that handlers deeper in the chain can
// report who made the request back to the access log.
type requestMeta struct {
	id     string
	userID string
}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	if meta := metaFromContext(ctx); meta != nil {
		meta.userID = p.UserID
	}
	return context.WithValue(ctx, principalKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey).(user.Principal)
	return p, ok
}

func withRequestMeta(ctx context.Context, meta *requestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}

func metaFromContext(ctx context.Context) *requestMeta {
	meta, _ := ctx.Value(requestMetaKey).(*requestMeta)
	return meta
}

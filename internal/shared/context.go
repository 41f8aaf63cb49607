package shared

import "context"

type clubContextKey struct{}

// ContextWithClub stores the tenant club id in context.
func ContextWithClub(ctx context.Context, clubID int64) context.Context {
	return context.WithValue(ctx, clubContextKey{}, clubID)
}

// ClubFromContext extracts the tenant club id, zero when absent.
func ClubFromContext(ctx context.Context) int64 {
	clubID, _ := ctx.Value(clubContextKey{}).(int64)
	return clubID
}

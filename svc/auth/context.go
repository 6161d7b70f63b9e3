package auth

import "context"

type userInfoContextKey struct{}

// WithUserInfo stores the signed-in user's info for downstream handlers.
func WithUserInfo(ctx context.Context, info *UserInfo) context.Context {
	return context.WithValue(ctx, userInfoContextKey{}, info)
}

// UserInfoFromContext returns nil outside RequireAuth or when the stored
// record was unreadable.
func UserInfoFromContext(ctx context.Context) *UserInfo {
	info, _ := ctx.Value(userInfoContextKey{}).(*UserInfo)
	return info
}

package authctx

import "context"

type tokenKey struct{}

// WithToken кладет bearer-токен пользователя в контекст
// Токен прокидывается без изменений в исходящие запросы к Rental API
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Token возвращает bearer-токен из контекста
func Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

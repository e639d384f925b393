package audit

import "context"

type actorKey struct{}

// WithActor anexa ao contexto o usuário autenticado responsável pela ação.
func WithActor(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, userID)
}

func ActorFrom(ctx context.Context) *string {
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return &v
	}
	return nil
}

func StrPtr(s string) *string {
	return &s
}

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

type activityRecorder interface {
	RecordActivity(ctx context.Context, id uuid.UUID)
}

// Activity touches the caller's last-active timestamp on every
// authenticated request. Run after Auth.
func Activity(recorder activityRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
				recorder.RecordActivity(r.Context(), id)
			}
			next.ServeHTTP(w, r)
		})
	}
}

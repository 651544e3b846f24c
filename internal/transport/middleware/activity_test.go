package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/pkg/ctxutil"
)

type activityRecorderMock struct {
	calls []uuid.UUID
}

func (m *activityRecorderMock) RecordActivity(_ context.Context, id uuid.UUID) {
	m.calls = append(m.calls, id)
}

func TestActivity_AuthenticatedRequest(t *testing.T) {
	t.Parallel()

	rec := &activityRecorderMock{}
	userID := uuid.New()

	handler := Activity(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), userID))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(rec.calls) != 1 || rec.calls[0] != userID {
		t.Errorf("calls = %v, want exactly [%s]", rec.calls, userID)
	}
}

func TestActivity_AnonymousRequest(t *testing.T) {
	t.Parallel()

	rec := &activityRecorderMock{}
	handler := Activity(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none for anonymous request", rec.calls)
	}
}

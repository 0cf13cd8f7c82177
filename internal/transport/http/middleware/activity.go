package httpmw

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SessionToucher отмечает активность встречи.
type SessionToucher interface {
	TouchMeeting(meetingID string)
}

// ActivityMiddleware обновляет last_activity встречи, если её id есть в пути.
func ActivityMiddleware(sessions SessionToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if meetingID := chi.URLParam(r, "id"); meetingID != "" {
				// best-effort: ошибки не прерывают запрос
				sessions.TouchMeeting(meetingID)
			}
			next.ServeHTTP(w, r)
		})
	}
}

package http

import (
	"net/http"
	"time"

	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/meeting-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint
	r.Get("/ws/meetings/{id}", wsServer.HandleWS)

	// Все маршруты требуют access_token и user_id
	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware)
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Get("/history", h.ListHistory)

		pr.Route("/meetings", func(rm chi.Router) {
			rm.Post("/", h.CreateMeeting)

			rm.Route("/{id}", func(rr chi.Router) {
				rr.Use(httpmw.ActivityMiddleware(h.sessions))

				rr.Get("/state", h.GetState)
				rr.Post("/end", h.EndMeeting)

				rr.Route("/users", func(ru chi.Router) {
					ru.Post("/", h.AddUser)
					ru.Route("/{userID}", func(rp chi.Router) {
						rp.Put("/", h.UpdateUser)
						rp.Delete("/", h.RemoveUser)
						rp.Post("/mute", h.ToggleMute)
						rp.Post("/video", h.ToggleVideo)
						rp.Post("/hand-raise", h.ToggleHandRaise)
						rp.Post("/screen-share", h.ToggleScreenSharing)
						rp.Post("/reaction", h.SetReaction)
					})
				})

				rr.Put("/current-user", h.SetCurrentUser)

				rr.Route("/queue", func(rq chi.Router) {
					rq.Post("/join", h.JoinQueue)
					rq.Post("/skip", h.SkipTurn)
				})

				rr.Route("/turn", func(rt chi.Router) {
					rt.Post("/dismiss", h.DismissTurn)
					rt.Post("/skip", h.DeclineTurn)
				})

				rr.Route("/timer", func(rt chi.Router) {
					rt.Post("/start", h.StartTimer)
					rt.Post("/pause", h.PauseTimer)
					rt.Post("/resume", h.ResumeTimer)
					rt.Post("/reset", h.ResetTimer)
					rt.Delete("/", h.ClearTimer)
				})

				rr.Route("/agenda", func(ra chi.Router) {
					ra.Post("/", h.AddAgendaItem)
					ra.Route("/{itemID}", func(ri chi.Router) {
						ri.Delete("/", h.RemoveAgendaItem)
						ri.Post("/toggle-completed", h.ToggleAgendaItemCompleted)
						ri.Put("/speaking-queue", h.SetAgendaSpeakingQueue)
						ri.Post("/start-queue", h.StartAgendaItemSpeakingQueue)
					})
				})

				rr.Delete("/notifications/{notificationID}", h.DismissNotification)
			})
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

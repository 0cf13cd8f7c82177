package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/postgres"
	"github.com/cwrk-planet/meeting-service/internal/service"
	"github.com/cwrk-planet/meeting-service/internal/session"
	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	sessions   *session.Manager
	historySvc *service.HistoryService
}

func NewHandler(sessions *session.Manager, history *service.HistoryService) *Handler {
	return &Handler{
		sessions:   sessions,
		historySvc: history,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// session достаёт сессию встречи из пути или отвечает 404.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	s, err := h.sessions.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "meeting not found"})
		return nil, false
	}
	return s, true
}

// POST /meetings
func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	h.sessions.GetOrCreate(req.ID)

	writeJSON(w, http.StatusCreated, MeetingCreatedResponse{MeetingID: req.ID})
}

// POST /meetings/{id}/end — архивирует итог встречи и убирает сессию.
func (h *Handler) EndMeeting(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	report := s.Report()
	if h.historySvc.Enabled() {
		if err := h.historySvc.Archive(r.Context(), report); err != nil {
			slog.Error("handler.EndMeeting.Archive:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
	}
	h.sessions.Remove(s.ID())

	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

// GET /meetings/{id}/state — снимок встречи глазами вызывающего.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	viewer := httpmw.UserIDFromCtx(r.Context())
	writeJSON(w, http.StatusOK, newStateResponse(s.Snapshot(), s.NotificationsFor(viewer)))
}

// POST /meetings/{id}/users
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	u := s.AddUser(domain.User{
		ID:           req.ID,
		Name:         req.Name,
		Role:         domain.Role(req.Role),
		IsMuted:      req.IsMuted,
		IsVideoOn:    req.IsVideoOn,
		IsHandRaised: req.IsHandRaised,
	})

	writeJSON(w, http.StatusCreated, newUserItem(u))
}

// DELETE /meetings/{id}/users/{userID}
func (h *Handler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.RemoveUser(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// PUT /meetings/{id}/users/{userID} — настройки профиля целиком.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	userID := chi.URLParam(r, "userID")
	current, err := s.User(userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}

	current.Name = req.Name
	current.Role = domain.Role(req.Role)
	current.IsMuted = req.IsMuted
	current.IsVideoOn = req.IsVideoOn
	current.IsScreenSharing = req.IsScreenSharing
	current.IsHandRaised = req.IsHandRaised
	current.Reaction = domain.Reaction(req.Reaction)

	if err := s.UpdateUser(current); err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, newUserItem(current))
}

// PUT /meetings/{id}/current-user
func (h *Handler) SetCurrentUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SetCurrentUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if err := s.SetCurrentUser(req.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("handler.SetCurrentUser:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/users/{userID}/mute
func (h *Handler) ToggleMute(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ToggleMute(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/users/{userID}/video
func (h *Handler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ToggleVideo(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/users/{userID}/hand-raise
func (h *Handler) ToggleHandRaise(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ToggleHandRaise(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/users/{userID}/screen-share
func (h *Handler) ToggleScreenSharing(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ToggleScreenSharing(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/users/{userID}/reaction
func (h *Handler) SetReaction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SetReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	s.SetReaction(chi.URLParam(r, "userID"), domain.Reaction(req.Reaction))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/queue/join
func (h *Handler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req JoinQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if req.UserID == "" {
		req.UserID = httpmw.UserIDFromCtx(r.Context())
	}
	// повторная постановка молча игнорируется внутри сессии
	s.JoinQueue(req.UserID, req.AgendaItemID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/queue/skip
func (h *Handler) SkipTurn(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SkipTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if req.UserID == "" {
		req.UserID = httpmw.UserIDFromCtx(r.Context())
	}
	s.SkipTurn(req.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/turn/dismiss — «буду говорить», закрыть приглашение.
func (h *Handler) DismissTurn(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.DismissTurn()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/turn/skip — отказ от своей очереди из приглашения.
func (h *Handler) DeclineTurn(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.DeclineTurn()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/timer/start
func (h *Handler) StartTimer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req StartTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	t := s.StartTimer(req.DurationSec, req.AgendaItemID, req.SpeakerID)
	writeJSON(w, http.StatusCreated, newTimerResponse(&t))
}

func (h *Handler) timerOp(w http.ResponseWriter, r *http.Request, op func(*session.Session) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := op(s); err != nil {
		if errors.Is(err, domain.ErrNoTimer) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no timer is set"})
			return
		}
		slog.Error("handler.timerOp:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/timer/pause
func (h *Handler) PauseTimer(w http.ResponseWriter, r *http.Request) {
	h.timerOp(w, r, (*session.Session).PauseTimer)
}

// POST /meetings/{id}/timer/resume
func (h *Handler) ResumeTimer(w http.ResponseWriter, r *http.Request) {
	h.timerOp(w, r, (*session.Session).ResumeTimer)
}

// POST /meetings/{id}/timer/reset
func (h *Handler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	h.timerOp(w, r, (*session.Session).ResetTimer)
}

// DELETE /meetings/{id}/timer — убрать таймер (уход с экрана встречи).
func (h *Handler) ClearTimer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ClearTimer()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/agenda
func (h *Handler) AddAgendaItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req AddAgendaItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "title is required"})
		return
	}
	item := s.AddAgendaItem(req.Title, req.DurationMin, req.Speaker, req.SpeakingQueue)
	writeJSON(w, http.StatusCreated, newAgendaItemResponse(item))
}

func (h *Handler) agendaOp(w http.ResponseWriter, r *http.Request, op func(*session.Session, string) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := op(s, chi.URLParam(r, "itemID")); err != nil {
		if errors.Is(err, domain.ErrAgendaItemNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "agenda item not found"})
			return
		}
		slog.Error("handler.agendaOp:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DELETE /meetings/{id}/agenda/{itemID}
func (h *Handler) RemoveAgendaItem(w http.ResponseWriter, r *http.Request) {
	h.agendaOp(w, r, (*session.Session).RemoveAgendaItem)
}

// POST /meetings/{id}/agenda/{itemID}/toggle-completed
func (h *Handler) ToggleAgendaItemCompleted(w http.ResponseWriter, r *http.Request) {
	h.agendaOp(w, r, (*session.Session).ToggleAgendaItemCompleted)
}

// PUT /meetings/{id}/agenda/{itemID}/speaking-queue
func (h *Handler) SetAgendaSpeakingQueue(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SetAgendaQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if err := s.SetAgendaSpeakingQueue(chi.URLParam(r, "itemID"), req.UserIDs); err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "agenda item not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /meetings/{id}/agenda/{itemID}/start-queue — загрузить шаблон в живую очередь.
func (h *Handler) StartAgendaItemSpeakingQueue(w http.ResponseWriter, r *http.Request) {
	h.agendaOp(w, r, (*session.Session).StartAgendaItemSpeakingQueue)
}

// DELETE /meetings/{id}/notifications/{notificationID}
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.DismissNotification(chi.URLParam(r, "notificationID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// GET /history?limit=&cursor=
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historySvc.Enabled() {
		writeJSON(w, http.StatusNotImplemented, ErrorResponse{Error: "history disabled"})
		return
	}
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	cursor := r.URL.Query().Get("cursor")

	items, next, err := h.historySvc.List(r.Context(), limit, cursor)
	if err != nil {
		if errors.Is(err, postgres.ErrInvalidCursor) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_cursor"})
			return
		}
		slog.Error("handler.ListHistory:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := HistoryListResponse{Items: make([]HistoryItem, 0, len(items)), NextCursor: next}
	for _, m := range items {
		it := HistoryItem{
			ID:           m.ID,
			Date:         m.Date,
			Participants: m.Participants,
			DurationMin:  m.Duration,
			Stats:        make([]StatsItem, 0, len(m.SpeakingStats)),
		}
		for _, st := range m.SpeakingStats {
			it.Stats = append(it.Stats, StatsItem{
				UserID:            st.UserID,
				TotalTimeSec:      st.TotalTime,
				SpeakingInstances: st.SpeakingInstances,
			})
		}
		resp.Items = append(resp.Items, it)
	}

	writeJSON(w, http.StatusOK, resp)
}

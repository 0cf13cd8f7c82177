package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	sessions *session.Manager

	pingEvery time.Duration
}

func NewServer(hub *Hub, sessions *session.Manager) *Server {
	return &Server{
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws/meetings/{id}?access_token=...&user_id=...
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accessToken := strings.TrimSpace(q.Get("access_token"))
	userID := strings.TrimSpace(q.Get("user_id"))
	if accessToken == "" {
		http.Error(w, "missing access_token", http.StatusUnauthorized)
		return
	}
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusUnauthorized)
		return
	}
	meetingID := chi.URLParam(r, "id")
	if meetingID == "" {
		http.Error(w, "missing meeting id", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.Get(meetingID)
	if err != nil {
		http.Error(w, "meeting not found", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	c := newWsConn(conn, meetingID, userID)
	s.hub.Add(c)

	if err := s.sendState(sess, c); err != nil {
		slog.Warn("ws send initial state failed", "meeting", meetingID, "user", userID, "err", err)
	}

	go s.writeLoop(c)
	s.readLoop(sess, c)

	s.hub.Remove(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "meeting", meetingID, "user", userID, "err", err)
	}
}

// PushMeeting рассылает свежий снапшот всем соединениям встречи.
// Уведомления в payload фильтруются по адресату соединения.
func (s *Server) PushMeeting(meetingID string) {
	sess, err := s.sessions.Get(meetingID)
	if err != nil {
		return
	}
	snap := sess.Snapshot()
	s.hub.ForEach(meetingID, func(c Conn) {
		_ = c.Send(Message{
			Type:    TypeState,
			Payload: newStatePayload(snap, sess.NotificationsFor(c.UserID())),
		})
	})
}

func (s *Server) sendState(sess *session.Session, c *wsConn) error {
	return c.Send(Message{
		Type:    TypeState,
		Payload: newStatePayload(sess.Snapshot(), sess.NotificationsFor(c.userID)),
	})
}

func (s *Server) readLoop(sess *session.Session, c *wsConn) {
	defer func() { _ = c.Close() }()

	sess.Touch()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		sess.Touch()
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeReaction:
			var p ReactionPayload
			if decode(msg.Payload, &p) == nil {
				sess.SetReaction(c.userID, domain.Reaction(p.Reaction))
			}
		case TypeDismissNotification:
			var p DismissNotificationPayload
			if decode(msg.Payload, &p) == nil && p.ID != "" {
				sess.DismissNotification(p.ID)
			}
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		}
	}
}

// --- helpers ---

func decode(payload interface{}, dst interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn      *websocket.Conn
	meetingID string
	userID    string
	sendMu    chan struct{}
	closed    chan struct{}
}

func newWsConn(c *websocket.Conn, meetingID, userID string) *wsConn {
	return &wsConn{
		conn:      c,
		meetingID: meetingID,
		userID:    userID,
		sendMu:    make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) UserID() string    { return c.userID }
func (c *wsConn) MeetingID() string { return c.meetingID }

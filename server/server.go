package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/ghostbfs/session"
)

// Server serves one session. It implements http.Handler.
type Server struct {
	sess     *session.Session
	router   *way.Router
	upgrader websocket.Upgrader
	opts     Options
	log      logrus.FieldLogger

	mu          sync.Mutex
	clients     mapset.Set[*client]
	closed      bool
	unsubscribe func()
}

// New wires routes for sess and subscribes to its changes. Call Close to
// detach from the session and drop every websocket client.
func New(sess *session.Session, opts ...Option) (*Server, error) {
	if sess == nil {
		return nil, ErrSessionNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	s := &Server{
		sess: sess,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		opts:    o,
		log:     o.Logger.WithField("component", "server"),
		clients: mapset.New[*client](),
	}
	s.routes()
	s.unsubscribe = sess.Subscribe(s.Broadcast)
	return s, nil
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc(http.MethodGet, "/board", s.handleBoard)
	s.router.HandleFunc(http.MethodPost, "/select/:index", s.handleSelect)
	s.router.HandleFunc(http.MethodPost, "/reset", s.handleReset)
	s.router.HandleFunc(http.MethodGet, "/ws", s.handleWS)
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close unsubscribes from the session and disconnects every client.
func (s *Server) Close() {
	s.unsubscribe()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.clients.Each(func(c *client) {
		close(c.send)
		c.conn.Close()
	})
	s.clients = mapset.New[*client]()
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients.Size()
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	raw := way.Param(r.Context(), "index")
	idx, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "bad cell index "+strconv.Quote(raw))
		return
	}
	if err := s.sess.Select(idx); err != nil {
		s.writeError(w, selectStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.sess.Reset()
	s.writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

// selectStatus maps a Select error to an HTTP status.
func selectStatus(err error) int {
	if errors.Is(err, session.ErrCellOutOfRange) || errors.Is(err, session.ErrCellDisabled) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

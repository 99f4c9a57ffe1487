package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrAlreadyConnected = errors.New("session already connected")

// Handler receives a decoded inbound event. Handlers run on the reader
// goroutine and must not block.
type Handler func(protocol.Event)

// Session owns the single websocket channel to the game server for the whole
// application lifetime. Inbound events are decoded once and routed to the
// handler registered for their kind; outbound commands are fire-and-forget
// through a bounded outbox drained by a writer goroutine.
type Session struct {
	log         *zap.Logger
	clientID    string
	sendTimeout time.Duration

	mu       sync.Mutex
	handlers map[string]Handler
	conn     *websocket.Conn
	dialing  bool

	outbox chan []byte
	ctx    context.Context
	cancel context.CancelFunc
}

func New(log *zap.Logger, queueSize int, sendTimeout time.Duration) *Session {
	return &Session{
		log:         log,
		clientID:    uuid.NewString(),
		sendTimeout: sendTimeout,
		handlers:    make(map[string]Handler),
		outbox:      make(chan []byte, queueSize),
	}
}

// SelfID is the identity this session presents to the server. It is stable
// for the connection's lifetime and doubles as the player id.
func (s *Session) SelfID() string { return s.clientID }

// Connect dials the server once per application lifetime. Commands queued
// before the dial are flushed as soon as the writer starts.
func (s *Session) Connect(ctx context.Context, rawURL string) error {
	s.mu.Lock()
	if s.conn != nil || s.dialing {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.dialing = true
	s.mu.Unlock()

	u, err := url.Parse(rawURL)
	if err != nil {
		s.setDialing(false)
		return err
	}
	q := u.Query()
	q.Set("client", s.clientID)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		s.setDialing(false)
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.dialing = false
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	go s.readLoop(conn)
	go s.writeLoop(conn)

	s.log.Info("connected", zap.String("url", u.Redacted()), zap.String("client", s.clientID))
	return nil
}

// Subscribe registers the handler for an event kind, replacing any previous
// one. Safe to call repeatedly.
func (s *Session) Subscribe(event string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = h
}

// Unsubscribe is idempotent.
func (s *Session) Unsubscribe(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, event)
}

// Send frames and queues an outbound command. There is no request/response
// correlation: outcomes arrive as later snapshots. When the outbox is full
// the command is dropped, observable as a no-op.
func (s *Session) Send(event string, payload any) {
	data, err := protocol.EncodeCommand(event, payload)
	if err != nil {
		s.log.Error("encode command", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case s.outbox <- data:
	default:
		s.log.Warn("outbox full, dropping command", zap.String("event", event))
	}
}

// Close tears the channel down with a best-effort normal closure.
func (s *Session) Close() {
	s.mu.Lock()
	conn := s.conn
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "bye")
	}
}

func (s *Session) setDialing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialing = v
}

func (s *Session) handlerFor(event string) Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handlers[event]
}

func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(s.ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if s.ctx.Err() == nil {
					s.log.Warn("read failed", zap.Error(err))
				}
			}
			return
		}

		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Debug("bad frame", zap.Error(err))
			continue
		}

		event, err := protocol.DecodeEvent(env.Event, env.Data)
		if err != nil {
			s.log.Debug("dropping event", zap.String("event", env.Event), zap.Error(err))
			continue
		}

		if h := s.handlerFor(env.Event); h != nil {
			h(event)
		}
	}
}

func (s *Session) writeLoop(conn *websocket.Conn) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case data := <-s.outbox:
			ctx, cancel := context.WithTimeout(s.ctx, s.sendTimeout)
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				s.log.Warn("write failed", zap.Error(err))
			}
			cancel()
		}
	}
}

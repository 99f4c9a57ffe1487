package room

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/JMF-Alex/ElImpostor-Frontend/internal/game"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/session"
	"github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"
	"go.uber.org/zap"
)

var (
	ErrEmptyName        = errors.New("player name is empty")
	ErrNameTooLong      = errors.New("player name too long")
	ErrNotInRoom        = errors.New("no active room")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrNotLeader        = errors.New("only the room leader can do that")
	ErrRoundNotOver     = errors.New("round is still running")
)

// Bus is the slice of the connection session the dispatcher needs.
type Bus interface {
	Subscribe(event string, h session.Handler)
	Unsubscribe(event string)
	Send(event string, payload any)
}

var roomEvents = []string{
	protocol.EventRoomUpdate,
	protocol.EventGameStarted,
	protocol.EventGameEnded,
	protocol.EventVoteTie,
	protocol.EventKicked,
	protocol.EventJoinError,
}

// Dispatcher translates inbound events into store replacements, result
// captures and transient signals, and relays the user's room-scoped intents.
// Subscriptions are armed per room identity and torn down on leave.
type Dispatcher struct {
	bus       Bus
	store     *Store
	votes     *game.VoteController
	log       *zap.Logger
	selfID    string
	tieWindow time.Duration

	mu        sync.Mutex
	roomID    string
	joined    bool
	joinErr   string // reason code, empty when none
	result    *protocol.Result
	tieActive bool
	tieGen    int
	kicked    bool
	onKicked  func()
	onChange  func()
}

func NewDispatcher(bus Bus, store *Store, votes *game.VoteController, selfID string, tieWindow time.Duration, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		bus:       bus,
		store:     store,
		votes:     votes,
		log:       log,
		selfID:    selfID,
		tieWindow: tieWindow,
	}
}

// OnChange registers a callback fired after every state transition, so the
// presentation layer can re-render. Runs on the reader goroutine.
func (d *Dispatcher) OnChange(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChange = fn
}

// OnKicked registers a callback for forced removal. Runs after all room
// state has been discarded.
func (d *Dispatcher) OnKicked(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onKicked = fn
}

// Attach arms the event subscriptions for a room. Switching rooms tears the
// old one down first, leave intent included, so server-side membership stays
// consistent.
func (d *Dispatcher) Attach(roomID string) {
	d.mu.Lock()
	prev := d.roomID
	d.mu.Unlock()
	if prev != "" && prev != roomID {
		d.teardown(true)
	}

	d.mu.Lock()
	d.roomID = roomID
	d.kicked = false
	d.mu.Unlock()

	for _, ev := range roomEvents {
		d.bus.Subscribe(ev, d.handle)
	}
	d.log.Info("attached to room", zap.String("room", roomID))
}

// Detach leaves the room: best-effort leave_room to keep server-side
// membership consistent, then all handlers torn down and local state dropped.
func (d *Dispatcher) Detach() {
	d.teardown(true)
}

// Join asks the server for membership under the given name. Membership is
// confirmed only by the next room_update; a join_error keeps joined false.
func (d *Dispatcher) Join(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len([]rune(name)) > protocol.MaxNameLength {
		return ErrNameTooLong
	}

	d.mu.Lock()
	roomID := d.roomID
	d.joinErr = ""
	d.mu.Unlock()
	if roomID == "" {
		return ErrNotInRoom
	}

	d.bus.Send(protocol.CmdJoinRoom, protocol.JoinRoomPayload{RoomID: roomID, PlayerName: name})
	return nil
}

// StartGame relays the start intent when quorum is met.
func (d *Dispatcher) StartGame() error {
	current, ok := d.store.Current()
	if !ok {
		return ErrNotInRoom
	}
	if !game.CanStart(current) {
		return ErrNotEnoughPlayers
	}
	d.bus.Send(protocol.CmdStartGame, current.ID)
	return nil
}

// KickPlayer relays a removal intent when the local player leads the room.
func (d *Dispatcher) KickPlayer(targetID string) error {
	current, ok := d.store.Current()
	if !ok {
		return ErrNotInRoom
	}
	if !game.CanModerate(current, d.selfID) {
		return ErrNotLeader
	}
	d.bus.Send(protocol.CmdKickPlayer, protocol.KickPlayerPayload{RoomID: current.ID, TargetID: targetID})
	return nil
}

// BackToLobby asks to reset the room after a round has ended.
func (d *Dispatcher) BackToLobby() error {
	current, ok := d.store.Current()
	if !ok {
		return ErrNotInRoom
	}
	if current.GameState != protocol.StateEnded {
		return ErrRoundNotOver
	}
	d.bus.Send(protocol.CmdBackToLobby, nil)
	return nil
}

func (d *Dispatcher) SelfID() string { return d.selfID }

func (d *Dispatcher) RoomID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.roomID
}

// Room returns the latest snapshot, if any.
func (d *Dispatcher) Room() (protocol.Room, bool) {
	return d.store.Current()
}

func (d *Dispatcher) Joined() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.joined
}

// JoinError returns the user-facing message for the last rejected join.
func (d *Dispatcher) JoinError() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.joinErr == "" {
		return "", false
	}
	return protocol.JoinErrorMessage(d.joinErr), true
}

// Result returns the round result while the ended phase lasts.
func (d *Dispatcher) Result() (protocol.Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.result == nil {
		return protocol.Result{}, false
	}
	return *d.result, true
}

// TieActive reports whether the tie banner window is open.
func (d *Dispatcher) TieActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tieActive
}

// KickedOut reports whether the server forcibly removed us.
func (d *Dispatcher) KickedOut() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.kicked
}

func (d *Dispatcher) handle(ev protocol.Event) {
	switch e := ev.(type) {
	case protocol.RoomUpdate:
		d.store.Replace(e.Room)
		d.mu.Lock()
		d.joined = true
		d.joinErr = ""
		d.mu.Unlock()

	case protocol.GameStarted:
		d.store.Replace(e.Room)
		d.mu.Lock()
		d.result = nil
		d.mu.Unlock()

	case protocol.GameEnded:
		d.mu.Lock()
		result := e.Result
		d.result = &result
		d.mu.Unlock()

	case protocol.VoteTie:
		// Round restarted: the prior vote is void no matter what is in
		// flight, and the banner clears itself after the window.
		d.votes.Clear()
		d.mu.Lock()
		d.tieActive = true
		d.tieGen++
		gen := d.tieGen
		d.mu.Unlock()
		time.AfterFunc(d.tieWindow, func() {
			d.mu.Lock()
			stale := d.tieGen != gen
			if !stale {
				d.tieActive = false
			}
			d.mu.Unlock()
			if !stale {
				d.notify()
			}
		})

	case protocol.Kicked:
		// Terminal for this room context. Membership is already gone
		// server-side, so no leave_room.
		d.log.Info("kicked from room", zap.String("room", d.RoomID()))
		d.teardown(false)
		d.mu.Lock()
		d.kicked = true
		onKicked := d.onKicked
		d.mu.Unlock()
		if onKicked != nil {
			onKicked()
		}

	case protocol.JoinError:
		d.mu.Lock()
		d.joined = false
		d.joinErr = e.Reason
		d.mu.Unlock()
	}

	d.notify()
}

func (d *Dispatcher) teardown(sendLeave bool) {
	d.mu.Lock()
	roomID := d.roomID
	d.roomID = ""
	d.joined = false
	d.joinErr = ""
	d.result = nil
	d.tieActive = false
	d.tieGen++ // voids any pending banner timer
	d.mu.Unlock()

	for _, ev := range roomEvents {
		d.bus.Unsubscribe(ev)
	}
	if sendLeave && roomID != "" {
		d.bus.Send(protocol.CmdLeaveRoom, roomID)
	}
	d.store.Clear()
	d.votes.Clear()
	d.notify()
}

func (d *Dispatcher) notify() {
	d.mu.Lock()
	fn := d.onChange
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

package game

import (
	"sync"

	"github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"
)

// Sender is the outbound side of the connection session. Commands are
// fire-and-forget; the next snapshot is the only confirmation.
type Sender interface {
	Send(event string, payload any)
}

// VoteController holds the local player's vote draft. The draft is optimistic
// state for display only: it is never merged into the room snapshot, and a
// fresher snapshot or a tie can invalidate it at any time.
type VoteController struct {
	sender Sender

	mu      sync.Mutex
	pending string // empty means no active selection
}

func NewVoteController(sender Sender) *VoteController {
	return &VoteController{sender: sender}
}

// CastOrToggle selects targetID, or retracts when it is already the current
// selection. The controller's new value goes to the server immediately; a nil
// target on the wire means retraction.
func (c *VoteController) CastOrToggle(roomID, targetID string) {
	c.mu.Lock()
	if c.pending == targetID {
		c.pending = ""
	} else {
		c.pending = targetID
	}
	pending := c.pending
	c.mu.Unlock()

	var target *string
	if pending != "" {
		target = &pending
	}
	c.sender.Send(protocol.CmdCastVote, protocol.CastVotePayload{RoomID: roomID, TargetID: target})
}

// Pending reports the current draft target, if any.
func (c *VoteController) Pending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending, c.pending != ""
}

// Clear voids the draft without notifying the server. Used when a tie
// restarts the round and when leaving the room.
func (c *VoteController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = ""
}

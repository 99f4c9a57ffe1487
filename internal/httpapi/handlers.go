package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"
)

// StateProvider is the read-only slice of the dispatcher the status endpoint
// exposes.
type StateProvider interface {
	Room() (protocol.Room, bool)
	Result() (protocol.Result, bool)
	Joined() bool
	TieActive() bool
	SelfID() string
}

// VoteReader exposes the local vote draft.
type VoteReader interface {
	Pending() (string, bool)
}

type stateResponse struct {
	SelfID      string           `json:"selfId"`
	Joined      bool             `json:"joined"`
	TieActive   bool             `json:"tieActive"`
	PendingVote string           `json:"pendingVote,omitempty"`
	Room        *protocol.Room   `json:"room,omitempty"`
	Result      *protocol.Result `json:"result,omitempty"`
}

// State dumps the current reconciled view for debugging.
func State(state StateProvider, votes VoteReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := stateResponse{
			SelfID:    state.SelfID(),
			Joined:    state.Joined(),
			TieActive: state.TieActive(),
		}
		if pending, ok := votes.Pending(); ok {
			resp.PendingVote = pending
		}
		if room, ok := state.Room(); ok {
			resp.Room = &room
		}
		if result, ok := state.Result(); ok {
			resp.Result = &result
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

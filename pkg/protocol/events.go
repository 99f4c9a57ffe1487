package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Server -> Client event names.
const (
	EventRoomUpdate  = "room_update"
	EventGameStarted = "game_started"
	EventGameEnded   = "game_ended"
	EventVoteTie     = "vote_tie"
	EventKicked      = "kicked"
	EventJoinError   = "join_error"
)

var ErrUnknownEvent = errors.New("unknown event")

// Envelope is the wire framing for both directions: an event name plus an
// event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Event is the closed set of inbound messages. Payload shape is checked once
// in DecodeEvent; handlers downstream get a typed variant, not raw JSON.
type Event interface{ isEvent() }

type RoomUpdate struct{ Room Room }

type GameStarted struct{ Room Room }

type GameEnded struct{ Result Result }

type VoteTie struct{}

type Kicked struct{}

type JoinError struct {
	Reason string `json:"reason"`
}

func (RoomUpdate) isEvent()  {}
func (GameStarted) isEvent() {}
func (GameEnded) isEvent()   {}
func (VoteTie) isEvent()     {}
func (Kicked) isEvent()      {}
func (JoinError) isEvent()   {}

// DecodeEvent turns a raw envelope payload into its typed variant.
func DecodeEvent(name string, data json.RawMessage) (Event, error) {
	switch name {
	case EventRoomUpdate:
		var room Room
		if err := json.Unmarshal(data, &room); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return RoomUpdate{Room: room}, nil

	case EventGameStarted:
		var room Room
		if err := json.Unmarshal(data, &room); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return GameStarted{Room: room}, nil

	case EventGameEnded:
		var result Result
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return GameEnded{Result: result}, nil

	case EventVoteTie:
		return VoteTie{}, nil

	case EventKicked:
		return Kicked{}, nil

	case EventJoinError:
		var payload JoinError
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
}

// JoinErrorMessage maps a join_error reason code to a message for the user.
func JoinErrorMessage(reason string) string {
	switch reason {
	case ReasonNameTaken:
		return "Ese nombre ya está en uso en la sala"
	default:
		return "No se pudo entrar a la sala"
	}
}

package protocol

import (
	"encoding/json"
	"fmt"
)

// Client -> Server command names.
const (
	CmdJoinRoom    = "join_room"
	CmdLeaveRoom   = "leave_room"
	CmdStartGame   = "start_game"
	CmdCastVote    = "cast_vote"
	CmdKickPlayer  = "kick_player"
	CmdBackToLobby = "back_to_lobby"
)

type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// CastVotePayload carries the voter's current selection. A nil TargetID is a
// retraction, mirroring the toggle in the UI.
type CastVotePayload struct {
	RoomID   string  `json:"roomId"`
	TargetID *string `json:"targetId"`
}

type KickPlayerPayload struct {
	RoomID   string `json:"roomId"`
	TargetID string `json:"targetId"`
}

// EncodeCommand frames an outbound command. leave_room and start_game carry
// the bare room id as their payload; back_to_lobby carries none.
func EncodeCommand(name string, payload any) ([]byte, error) {
	env := Envelope{Event: name}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

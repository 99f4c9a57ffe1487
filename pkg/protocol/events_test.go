package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeEventVariants(t *testing.T) {
	cases := []struct {
		name    string
		event   string
		data    string
		check   func(t *testing.T, ev Event)
		wantErr bool
	}{
		{
			name:  "room_update carries a full room",
			event: EventRoomUpdate,
			data: `{"id":"cueva","gameState":"lobby","players":[
				{"id":"p1","name":"Ana","isAlive":true,"status":"lobby"}],
				"scores":{"p1":2}}`,
			check: func(t *testing.T, ev Event) {
				update, ok := ev.(RoomUpdate)
				if !ok {
					t.Fatalf("want RoomUpdate, got %T", ev)
				}
				if update.Room.ID != "cueva" || len(update.Room.Players) != 1 {
					t.Fatalf("bad room: %+v", update.Room)
				}
				if update.Room.Scores["p1"] != 2 {
					t.Fatalf("scores not decoded: %+v", update.Room.Scores)
				}
			},
		},
		{
			name:  "game_started is a room too",
			event: EventGameStarted,
			data:  `{"id":"cueva","gameState":"playing","secretWord":"faro","impostorId":"p2"}`,
			check: func(t *testing.T, ev Event) {
				started, ok := ev.(GameStarted)
				if !ok {
					t.Fatalf("want GameStarted, got %T", ev)
				}
				if started.Room.GameState != StatePlaying || started.Room.ImpostorID != "p2" {
					t.Fatalf("bad room: %+v", started.Room)
				}
			},
		},
		{
			name:  "game_ended carries the result",
			event: EventGameEnded,
			data:  `{"winner":"friends","word":"faro","impostor":"Bea","ejectedName":"Bea"}`,
			check: func(t *testing.T, ev Event) {
				ended, ok := ev.(GameEnded)
				if !ok {
					t.Fatalf("want GameEnded, got %T", ev)
				}
				if ended.Result.Winner != WinnerFriends || ended.Result.EjectedName != "Bea" {
					t.Fatalf("bad result: %+v", ended.Result)
				}
			},
		},
		{
			name:  "vote_tie has no payload",
			event: EventVoteTie,
			check: func(t *testing.T, ev Event) {
				if _, ok := ev.(VoteTie); !ok {
					t.Fatalf("want VoteTie, got %T", ev)
				}
			},
		},
		{
			name:  "kicked has no payload",
			event: EventKicked,
			check: func(t *testing.T, ev Event) {
				if _, ok := ev.(Kicked); !ok {
					t.Fatalf("want Kicked, got %T", ev)
				}
			},
		},
		{
			name:  "join_error exposes the reason code",
			event: EventJoinError,
			data:  `{"reason":"NAME_ALREADY_EXISTS"}`,
			check: func(t *testing.T, ev Event) {
				joinErr, ok := ev.(JoinError)
				if !ok {
					t.Fatalf("want JoinError, got %T", ev)
				}
				if joinErr.Reason != ReasonNameTaken {
					t.Fatalf("bad reason: %q", joinErr.Reason)
				}
			},
		},
		{
			name:    "unknown event kind is rejected",
			event:   "player_sneezed",
			wantErr: true,
		},
		{
			name:    "malformed payload is rejected at the boundary",
			event:   EventRoomUpdate,
			data:    `"not a room"`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := DecodeEvent(tc.event, json.RawMessage(tc.data))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %T", ev)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			tc.check(t, ev)
		})
	}
}

func TestDecodeEventUnknownSentinel(t *testing.T) {
	_, err := DecodeEvent("nope", nil)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("want ErrUnknownEvent, got %v", err)
	}
}

func TestEncodeCommandRetractionIsNull(t *testing.T) {
	data, err := EncodeCommand(CmdCastVote, CastVotePayload{RoomID: "cueva", TargetID: nil})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var env struct {
		Event string `json:"event"`
		Data  struct {
			RoomID   string  `json:"roomId"`
			TargetID *string `json:"targetId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if env.Event != CmdCastVote || env.Data.RoomID != "cueva" {
		t.Fatalf("bad envelope: %s", data)
	}
	if env.Data.TargetID != nil {
		t.Fatalf("retraction must be null, got %q", *env.Data.TargetID)
	}
}

func TestEncodeCommandBareRoomID(t *testing.T) {
	data, err := EncodeCommand(CmdLeaveRoom, "cueva")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if string(env.Data) != `"cueva"` {
		t.Fatalf("leave_room payload must be the bare id, got %s", env.Data)
	}
}

func TestEncodeCommandNoPayload(t *testing.T) {
	data, err := EncodeCommand(CmdBackToLobby, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if env.Event != CmdBackToLobby || len(env.Data) != 0 {
		t.Fatalf("bad envelope: %s", data)
	}
}

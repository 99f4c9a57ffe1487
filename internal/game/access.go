package game

import "github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"

// MinPlayersToStart is the quorum for a valid round. Below it the impostor
// has no plausible cover.
const MinPlayersToStart = 3

// CanStart reports whether starting a round is worth attempting. Advisory
// only; the server re-validates.
func CanStart(room protocol.Room) bool {
	return len(room.Players) >= MinPlayersToStart
}

// CanModerate reports whether selfID holds the room's moderation privileges
// (start rounds, remove participants). Advisory only.
func CanModerate(room protocol.Room, selfID string) bool {
	return room.LeaderID != "" && room.LeaderID == selfID
}

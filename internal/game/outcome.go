package game

import "github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"

// Points awarded for display at the end of a round. The authoritative scores
// arrive in the snapshot; these only explain the delta.
const (
	ImpostorWinPoints = 3
	FriendWinPoints   = 1
)

type PlayerOutcome struct {
	PlayerID   string
	Name       string
	IsImpostor bool
	Won        bool
	Points     int
}

// Resolve computes per-player round outcomes from the terminal snapshot and
// the result payload, in join order. A friend wins exactly when the friends
// win; the impostor wins exactly when they do not.
func Resolve(room protocol.Room, result protocol.Result) []PlayerOutcome {
	friendsWon := result.Winner == protocol.WinnerFriends

	outcomes := make([]PlayerOutcome, 0, len(room.Players))
	for _, p := range room.Players {
		isImpostor := p.ID == room.ImpostorID
		won := friendsWon != isImpostor

		points := 0
		if won {
			if isImpostor {
				points = ImpostorWinPoints
			} else {
				points = FriendWinPoints
			}
		}

		outcomes = append(outcomes, PlayerOutcome{
			PlayerID:   p.ID,
			Name:       p.Name,
			IsImpostor: isImpostor,
			Won:        won,
			Points:     points,
		})
	}
	return outcomes
}

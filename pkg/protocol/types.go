package protocol

// Role is the secret assignment a player carries while a round is running.
// The server leaves it empty for everyone in the lobby and for other players
// whose role the client is not allowed to see.
type Role string

const (
	RoleImpostor Role = "impostor"
	RoleFriend   Role = "friend"
)

type PlayerStatus string

const (
	StatusLobby   PlayerStatus = "lobby"
	StatusPlaying PlayerStatus = "playing"
)

type GameState string

const (
	StateLobby   GameState = "lobby"
	StatePlaying GameState = "playing"
	StateEnded   GameState = "ended"
)

// MaxNameLength matches the input limit of the web client.
const MaxNameLength = 15

type Player struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Role    Role         `json:"role,omitempty"`
	IsAlive bool         `json:"isAlive"`
	Status  PlayerStatus `json:"status"`
}

// Room is the authoritative snapshot the server pushes. It is always replaced
// in full, never patched, so a stale field can only come from a stale whole
// snapshot and is fixed by the next one.
type Room struct {
	ID               string            `json:"id"`
	Players          []Player          `json:"players"` // join order
	GameState        GameState         `json:"gameState"`
	SecretWord       string            `json:"secretWord,omitempty"`
	Category         string            `json:"category,omitempty"`
	ImpostorID       string            `json:"impostorId,omitempty"`
	ImpostorHint     string            `json:"impostorHint,omitempty"`
	StartingPlayerID string            `json:"startingPlayerId,omitempty"`
	LeaderID         string            `json:"leaderId,omitempty"`
	Votes            map[string]string `json:"votes,omitempty"` // voterId -> targetId
	Scores           map[string]int    `json:"scores,omitempty"`
}

// FindPlayer returns the member with the given id, or nil.
func (r *Room) FindPlayer(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

type Winner string

const (
	WinnerFriends  Winner = "friends"
	WinnerImpostor Winner = "impostor"
)

// Result accompanies the ended phase. It lives until the room returns to the
// lobby or the next round starts.
type Result struct {
	Winner       Winner `json:"winner"`
	Word         string `json:"word"`
	ImpostorName string `json:"impostor"`
	EjectedName  string `json:"ejectedName,omitempty"`
}

// Join rejection reasons reported through join_error.
const ReasonNameTaken = "NAME_ALREADY_EXISTS"

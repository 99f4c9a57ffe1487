package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/JMF-Alex/ElImpostor-Frontend/internal/game"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/room"
	"github.com/JMF-Alex/ElImpostor-Frontend/pkg/protocol"
)

// App is the terminal presentation: it formats the reconciled view and relays
// user intents to the controllers. It holds no game state of its own.
type App struct {
	dispatcher *room.Dispatcher
	votes      *game.VoteController

	mu  sync.Mutex // serializes renders from the reader goroutine and the loop
	out io.Writer
	in  io.Reader
}

func New(dispatcher *room.Dispatcher, votes *game.VoteController, in io.Reader, out io.Writer) *App {
	app := &App{
		dispatcher: dispatcher,
		votes:      votes,
		in:         in,
		out:        out,
	}
	dispatcher.OnChange(app.Render)
	dispatcher.OnKicked(func() {
		app.printf("\n>> Has sido expulsado de la sala.\n")
	})
	return app
}

// Run reads intents until quit or EOF.
func (a *App) Run() error {
	a.printf("EL IMPOSTOR — cliente de terminal\n")
	a.printHelp()

	scanner := bufio.NewScanner(a.in)
	for {
		a.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			a.Render()
			continue
		}

		switch fields[0] {
		case "join":
			if len(fields) < 3 {
				a.printf("uso: join <sala> <nombre>\n")
				continue
			}
			a.dispatcher.Attach(fields[1])
			if err := a.dispatcher.Join(strings.Join(fields[2:], " ")); err != nil {
				a.printf("error: %v\n", err)
			}

		case "start":
			if err := a.dispatcher.StartGame(); err != nil {
				a.printf("error: %v\n", err)
			}

		case "vote":
			if len(fields) != 2 {
				a.printf("uso: vote <num|nombre>\n")
				continue
			}
			target, ok := a.resolveTarget(fields[1])
			if !ok {
				a.printf("jugador desconocido: %s\n", fields[1])
				continue
			}
			a.votes.CastOrToggle(a.dispatcher.RoomID(), target.ID)
			a.Render()

		case "kick":
			if len(fields) != 2 {
				a.printf("uso: kick <num|nombre>\n")
				continue
			}
			target, ok := a.resolveTarget(fields[1])
			if !ok {
				a.printf("jugador desconocido: %s\n", fields[1])
				continue
			}
			if err := a.dispatcher.KickPlayer(target.ID); err != nil {
				a.printf("error: %v\n", err)
			}

		case "back":
			if err := a.dispatcher.BackToLobby(); err != nil {
				a.printf("error: %v\n", err)
			}

		case "leave":
			a.dispatcher.Detach()
			a.printf("Has salido de la sala.\n")

		case "show":
			a.Render()

		case "help":
			a.printHelp()

		case "quit", "exit":
			return nil

		default:
			a.printf("comando desconocido: %s\n", fields[0])
		}
	}
}

// Render prints the current view. Registered as the dispatcher's change hook.
func (a *App) Render() {
	snapshot, hasRoom := a.dispatcher.Room()

	a.mu.Lock()
	defer a.mu.Unlock()

	if msg, ok := a.dispatcher.JoinError(); ok {
		fmt.Fprintf(a.out, "\n!! %s\n", msg)
		return
	}
	if a.dispatcher.RoomID() == "" && !hasRoom {
		fmt.Fprintf(a.out, "\nSin sala. Usa: join <sala> <nombre>\n")
		return
	}
	if !hasRoom {
		fmt.Fprintf(a.out, "\nSincronizando con la red...\n")
		return
	}

	switch snapshot.GameState {
	case protocol.StateLobby:
		a.renderLobby(snapshot)
	case protocol.StatePlaying:
		a.renderRound(snapshot)
	case protocol.StateEnded:
		if result, ok := a.dispatcher.Result(); ok {
			a.renderResult(snapshot, result)
		} else {
			a.renderRound(snapshot)
		}
	}
}

func (a *App) renderLobby(snapshot protocol.Room) {
	fmt.Fprintf(a.out, "\nSALA %s — en espera (%d jugadores)\n", snapshot.ID, len(snapshot.Players))
	for i, p := range snapshot.Players {
		marker := " "
		if p.ID == a.dispatcher.SelfID() {
			marker = "*"
		}
		fmt.Fprintf(a.out, " %s %d. %-15s  %d pts\n", marker, i+1, p.Name, snapshot.Scores[p.ID])
	}
	if game.CanStart(snapshot) {
		fmt.Fprintf(a.out, "Listos para empezar: start\n")
	} else {
		fmt.Fprintf(a.out, "Faltan %d participantes (mínimo %d)\n",
			game.MinPlayersToStart-len(snapshot.Players), game.MinPlayersToStart)
	}
}

func (a *App) renderRound(snapshot protocol.Room) {
	fmt.Fprintf(a.out, "\nSALA %s — partida en curso\n", snapshot.ID)

	me := snapshot.FindPlayer(a.dispatcher.SelfID())
	if me != nil && me.Role == protocol.RoleImpostor {
		fmt.Fprintf(a.out, " Eres el IMPOSTOR. Categoría: %s\n", a.hintFor(snapshot))
	} else if me != nil {
		fmt.Fprintf(a.out, " Eres AMIGO. Palabra secreta: %s\n", snapshot.SecretWord)
	}
	if starter := snapshot.FindPlayer(snapshot.StartingPlayerID); starter != nil {
		fmt.Fprintf(a.out, " Empieza hablando: %s\n", starter.Name)
	}

	if a.dispatcher.TieActive() {
		fmt.Fprintf(a.out, " ¡EMPATE! VOTAD DE NUEVO\n")
	}

	pending, hasVote := a.votes.Pending()
	fmt.Fprintf(a.out, " Consejo de expulsión:\n")
	for i, p := range snapshot.Players {
		marker := " "
		if hasVote && p.ID == pending {
			marker = ">"
		}
		fmt.Fprintf(a.out, " %s %d. %s\n", marker, i+1, p.Name)
	}
	if hasVote {
		fmt.Fprintf(a.out, " Voto registrado. Repite el voto para retirarlo.\n")
	} else {
		fmt.Fprintf(a.out, " Esperando tu voto...\n")
	}
}

func (a *App) renderResult(snapshot protocol.Room, result protocol.Result) {
	me := snapshot.FindPlayer(a.dispatcher.SelfID())
	won := false
	if me != nil {
		isImpostor := me.ID == snapshot.ImpostorID
		won = (result.Winner == protocol.WinnerFriends) != isImpostor
	}

	if won {
		fmt.Fprintf(a.out, "\nHAS GANADO\n")
	} else {
		fmt.Fprintf(a.out, "\nHAS PERDIDO\n")
	}
	fmt.Fprintf(a.out, " Palabra: %s — Impostor: %s\n", result.Word, result.ImpostorName)
	if result.EjectedName != "" {
		fmt.Fprintf(a.out, " Expulsado: %s\n", result.EjectedName)
	}

	fmt.Fprintf(a.out, " Puntuaciones:\n")
	for _, outcome := range game.Resolve(snapshot, result) {
		tag := ""
		if outcome.IsImpostor {
			tag = " (IMPOSTOR)"
		}
		fmt.Fprintf(a.out, "  %-15s%-11s +%d  total %d\n",
			outcome.Name, tag, outcome.Points, snapshot.Scores[outcome.PlayerID])
	}
	fmt.Fprintf(a.out, " Usa back para volver al lobby.\n")
}

// hintFor prefers the explicit impostor hint when the server sends one.
func (a *App) hintFor(snapshot protocol.Room) string {
	if snapshot.ImpostorHint != "" {
		return snapshot.ImpostorHint
	}
	return snapshot.Category
}

func (a *App) resolveTarget(arg string) (protocol.Player, bool) {
	snapshot, ok := a.dispatcher.Room()
	if !ok {
		return protocol.Player{}, false
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(snapshot.Players) {
			return snapshot.Players[n-1], true
		}
		return protocol.Player{}, false
	}
	for _, p := range snapshot.Players {
		if strings.EqualFold(p.Name, arg) {
			return p, true
		}
	}
	return protocol.Player{}, false
}

func (a *App) printHelp() {
	a.printf("comandos: join <sala> <nombre> | start | vote <num|nombre> | kick <num|nombre> | back | leave | show | quit\n")
}

func (a *App) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

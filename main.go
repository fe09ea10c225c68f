package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"chain-reaction/internal/config"
	"chain-reaction/internal/game"
	apperrors "chain-reaction/internal/platform/errors"
	"chain-reaction/internal/room"
	"chain-reaction/internal/shared"
	"chain-reaction/internal/store"
)

// Local game on the terminal: you against a greedy CPU, played through the
// same room manager the server uses.
func main() {
	log.SetPrefix("[CHAIN-REACTION] ")
	log.SetOutput(os.Stderr)

	ctx := context.Background()
	rm := room.NewManager(store.NewMemoryStore())

	r, err := rm.CreateRoom(ctx, "You", "terminal", config.DefaultSettings())
	if err != nil {
		log.Fatal(err)
	}
	_, cpu, err := rm.JoinRoom(ctx, r.ID, "CPU")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := rm.StartGame(ctx, r.ID, r.HostID); err != nil {
		log.Fatal(err)
	}
	you := r.HostID
	symbols := map[string]string{you: "X", cpu.ID: "O"}

	reader := bufio.NewReader(os.Stdin)
	for {
		cur, err := rm.Get(ctx, r.ID)
		if err != nil {
			log.Fatal(err)
		}
		st := cur.GameState
		printBoard(st.Grid, symbols)
		if st.Status == game.StatusFinished {
			break
		}

		if st.CurrentPlayerID == cpu.ID {
			mv, ok := game.Suggest(st.Grid, cpu.ID)
			if !ok {
				log.Fatal("CPU has no legal move")
			}
			fmt.Printf("CPU plays (%d,%d)\n", mv.Row+1, mv.Col+1)
			if _, err := rm.MakeMove(ctx, shared.MoveRequest{RoomID: r.ID, PlayerID: cpu.ID, Row: mv.Row, Col: mv.Col}); err != nil {
				log.Fatal(err)
			}
			continue
		}

		fmt.Println("Your move: row col (e.g. 3 4), or u to undo your last move")
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			parts := strings.Fields(line)
			if len(parts) == 1 && parts[0] == "u" {
				committed, err := undoRound(ctx, rm, r.ID, cpu.ID, you)
				if err != nil {
					fmt.Println(apperrors.UserMessage(err, room.MsgUndoFailed))
				}
				if !committed {
					continue
				}
				break
			}
			if len(parts) != 2 {
				fmt.Println("Expected: row col")
				continue
			}
			row, errR := strconv.Atoi(parts[0])
			col, errC := strconv.Atoi(parts[1])
			if errR != nil || errC != nil {
				fmt.Println("Expected: row col")
				continue
			}
			_, err = rm.MakeMove(ctx, shared.MoveRequest{RoomID: r.ID, PlayerID: you, Row: row - 1, Col: col - 1})
			if err != nil {
				fmt.Println(apperrors.UserMessage(err, room.MsgMoveFailed))
				continue
			}
			break
		}
	}

	final, err := rm.Get(ctx, r.ID)
	if err != nil {
		log.Fatal(err)
	}
	winner, _ := final.GameState.Player(final.GameState.WinnerID)
	fmt.Printf("\n%s wins after %d moves!\n", winner.Name, final.GameState.MoveCount)
	js, _ := json.MarshalIndent(final.GameState.Players, "", "  ")
	fmt.Println(string(js))
}

// undoRound takes back the CPU reply and then your own move. committed is
// true once any undo went through, so the caller must reread the turn.
func undoRound(ctx context.Context, rm *room.Manager, roomID, cpuID, youID string) (committed bool, err error) {
	if _, err := rm.Undo(ctx, shared.UndoRequest{RoomID: roomID, PlayerID: cpuID}); err != nil {
		return false, err
	}
	if _, err := rm.Undo(ctx, shared.UndoRequest{RoomID: roomID, PlayerID: youID}); err != nil {
		return true, err
	}
	return true, nil
}

func printBoard(b game.Board, symbols map[string]string) {
	fmt.Print("\n   ")
	for c := 0; c < b.Cols; c++ {
		fmt.Printf("%3d", c+1)
	}
	fmt.Println()
	for r := 0; r < b.Rows; r++ {
		fmt.Printf("%3d", r+1)
		for c := 0; c < b.Cols; c++ {
			cell := b.Cells[r][c]
			if cell.Neutral() {
				fmt.Print("  .")
				continue
			}
			fmt.Printf(" %d%s", cell.Orbs, symbols[cell.Owner])
		}
		fmt.Println()
	}
}

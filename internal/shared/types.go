package shared

import (
	"errors"
	"fmt"
	"time"

	"chain-reaction/internal/game"
)

const (
	MinPlayers = 2
	MaxPlayers = 8

	MinGameTimeLimit = 60 // seconds
	MinMoveTimeLimit = 5  // seconds
)

var ErrInvalidSettings = errors.New("invalid settings")

type BoardSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type Settings struct {
	MaxPlayers int       `json:"maxPlayers"`
	BoardSize  BoardSize `json:"boardSize"`
	// Time limits are in seconds; zero means no limit. They are advisory and
	// enforced by whoever schedules turns, not by the move processor.
	GameTimeLimit int  `json:"gameTimeLimit,omitempty"`
	MoveTimeLimit int  `json:"moveTimeLimit,omitempty"`
	UndoEnabled   bool `json:"undoEnabled"`
	IsPrivate     bool `json:"isPrivate"`
}

func (s Settings) Validate() error {
	switch {
	case s.MaxPlayers < MinPlayers || s.MaxPlayers > MaxPlayers:
		return fmt.Errorf("%w: maxPlayers must be between %d and %d", ErrInvalidSettings, MinPlayers, MaxPlayers)
	case s.BoardSize.Rows < game.MinBoardSide || s.BoardSize.Rows > game.MaxBoardSide,
		s.BoardSize.Cols < game.MinBoardSide || s.BoardSize.Cols > game.MaxBoardSide:
		return fmt.Errorf("%w: board rows and cols must be between %d and %d", ErrInvalidSettings, game.MinBoardSide, game.MaxBoardSide)
	case s.GameTimeLimit != 0 && s.GameTimeLimit < MinGameTimeLimit:
		return fmt.Errorf("%w: gameTimeLimit must be at least %ds", ErrInvalidSettings, MinGameTimeLimit)
	case s.MoveTimeLimit != 0 && s.MoveTimeLimit < MinMoveTimeLimit:
		return fmt.Errorf("%w: moveTimeLimit must be at least %ds", ErrInvalidSettings, MinMoveTimeLimit)
	}
	return nil
}

type GameState struct {
	Grid            game.Board    `json:"grid"`
	Players         []game.Player `json:"players"` // join order is turn order
	CurrentPlayerID string        `json:"currentPlayerId"`
	MoveCount       int           `json:"moveCount"`
	TurnStartedAt   time.Time     `json:"turnStartedAt"`
	StartedAt       time.Time     `json:"startedAt"`
	Status          game.Status   `json:"status"`
	WinnerID        string        `json:"winnerId,omitempty"`
}

// Clone deep-copies the grid and the player list.
func (s GameState) Clone() GameState {
	out := s
	out.Grid = s.Grid.Clone()
	out.Players = append([]game.Player(nil), s.Players...)
	return out
}

func (s GameState) Player(id string) (game.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return game.Player{}, false
}

type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HostID    string    `json:"hostId"`
	GameState GameState `json:"gameState"`
	Settings  Settings  `json:"settings"`
	History   History   `json:"history"`
	CreatedAt time.Time `json:"createdAt"`
	// Version is assigned by the store on every committed write.
	Version int64 `json:"version"`
}

func (r Room) Clone() Room {
	out := r
	out.GameState = r.GameState.Clone()
	out.History = r.History.clone()
	return out
}

type MoveRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"-"` // supplied out-of-band
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type UndoRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"-"`
}

// TurnDeadline is when the current turn expires under settings.
func TurnDeadline(s GameState, settings Settings) (time.Time, bool) {
	if s.Status != game.StatusActive || settings.MoveTimeLimit == 0 {
		return time.Time{}, false
	}
	return s.TurnStartedAt.Add(time.Duration(settings.MoveTimeLimit) * time.Second), true
}

// GameDeadline is when the whole game expires under the room's settings.
func GameDeadline(r Room) (time.Time, bool) {
	if r.GameState.Status != game.StatusActive || r.Settings.GameTimeLimit == 0 {
		return time.Time{}, false
	}
	return r.GameState.StartedAt.Add(time.Duration(r.Settings.GameTimeLimit) * time.Second), true
}

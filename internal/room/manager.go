package room

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"chain-reaction/internal/config"
	"chain-reaction/internal/game"
	apperrors "chain-reaction/internal/platform/errors"
	"chain-reaction/internal/shared"
	"chain-reaction/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultHistoryDepth = 10

// Manager runs every room mutation as read, compute, conditional write.
// It never retries on its own; a Conflict is returned to the caller.
type Manager struct {
	store        Store
	hub          Broadcaster
	now          func() time.Time
	historyDepth int
	colors       []string
	tracer       trace.Tracer
}

type Option func(*Manager)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithHistoryDepth bounds how many snapshots a new room keeps for undo.
func WithHistoryDepth(depth int) Option {
	return func(m *Manager) {
		if depth > 0 {
			m.historyDepth = depth
		}
	}
}

func WithBroadcaster(b Broadcaster) Option {
	return func(m *Manager) { m.SetBroadcaster(b) }
}

func NewManager(s Store, opts ...Option) *Manager {
	m := &Manager{
		store:        s,
		hub:          noopBroadcaster{},
		now:          func() time.Time { return time.Now().UTC() },
		historyDepth: defaultHistoryDepth,
		colors:       config.DefaultPlayerColors,
		tracer:       otel.Tracer("chain-reaction/internal/room"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetBroadcaster wires the fan-out after construction, since the hub itself
// needs the manager.
func (m *Manager) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = noopBroadcaster{}
	}
	m.hub = b
}

// Get returns the committed room.
func (m *Manager) Get(ctx context.Context, roomID string) (shared.Room, error) {
	r, err := m.store.GetRoom(ctx, roomID)
	if err != nil {
		return shared.Room{}, m.storeError(roomID, "read room", err)
	}
	return r, nil
}

// MakeMove places one orb for req.PlayerID and returns the committed state.
func (m *Manager) MakeMove(ctx context.Context, req shared.MoveRequest) (shared.GameState, error) {
	ctx, span := m.tracer.Start(ctx, "room.MakeMove", trace.WithAttributes(
		attribute.String("room.id", req.RoomID),
		attribute.String("player.id", req.PlayerID),
		attribute.Int("move.row", req.Row),
		attribute.Int("move.col", req.Col),
	))
	defer span.End()

	var cascade game.Cascade
	saved, err := m.mutate(ctx, req.RoomID, func(r shared.Room) (shared.Room, error) {
		next, res, err := applyMove(r, req, m.now())
		cascade = res
		return next, err
	})
	if err != nil {
		m.fail(span, req.RoomID, "move", err)
		return shared.GameState{}, err
	}
	span.SetAttributes(attribute.Int("cascade.explosions", cascade.Explosions))

	st := saved.GameState
	log.Printf("room %s: %s placed at (%d,%d), %d explosions, move %d", saved.ID, req.PlayerID, req.Row, req.Col, cascade.Explosions, st.MoveCount)
	m.hub.Broadcast(saved.ID, ActionMove, gin.H{
		"playerId":   req.PlayerID,
		"row":        req.Row,
		"col":        req.Col,
		"explosions": cascade.Explosions,
		"gameState":  st,
	})
	if st.Status == game.StatusFinished {
		log.Printf("room %s: %s won after %d moves", saved.ID, st.WinnerID, st.MoveCount)
		m.hub.Broadcast(saved.ID, ActionGameOver, gin.H{
			"winnerId":  st.WinnerID,
			"gameState": st,
		})
	}
	return st, nil
}

// Undo reverts the most recent move on behalf of the player who made it.
func (m *Manager) Undo(ctx context.Context, req shared.UndoRequest) (shared.GameState, error) {
	ctx, span := m.tracer.Start(ctx, "room.Undo", trace.WithAttributes(
		attribute.String("room.id", req.RoomID),
		attribute.String("player.id", req.PlayerID),
	))
	defer span.End()

	saved, err := m.mutate(ctx, req.RoomID, func(r shared.Room) (shared.Room, error) {
		return undoMove(r, req.PlayerID)
	})
	if err != nil {
		m.fail(span, req.RoomID, "undo", err)
		return shared.GameState{}, err
	}

	log.Printf("room %s: %s undid a move, back to move %d", saved.ID, req.PlayerID, saved.GameState.MoveCount)
	m.hub.Broadcast(saved.ID, ActionUndo, gin.H{
		"playerId":  req.PlayerID,
		"gameState": saved.GameState,
	})
	return saved.GameState, nil
}

// CreateRoom opens a lobby with the host seated first.
func (m *Manager) CreateRoom(ctx context.Context, hostName, roomName string, settings shared.Settings) (shared.Room, error) {
	if err := settings.Validate(); err != nil {
		return shared.Room{}, apperrors.Wrap(apperrors.CodeInvalidSettings, err.Error(), err)
	}
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		hostName = "Player"
	}
	roomName = strings.TrimSpace(roomName)
	if roomName == "" {
		roomName = hostName + "'s room"
	}

	now := m.now()
	host := m.newPlayer(hostName, 0)
	r := shared.Room{
		ID:       uuid.NewString(),
		Name:     roomName,
		HostID:   host.ID,
		Settings: settings,
		GameState: shared.GameState{
			Grid:    game.NewBoard(settings.BoardSize.Rows, settings.BoardSize.Cols),
			Players: []game.Player{host},
			Status:  game.StatusLobby,
		},
		History:   shared.NewHistory(m.historyDepth),
		CreatedAt: now,
	}

	created, err := m.store.CreateRoom(ctx, r)
	if err != nil {
		return shared.Room{}, m.storeError(r.ID, "create room", err)
	}
	log.Printf("room %s created by %s (%dx%d, max %d players)", created.ID, hostName, settings.BoardSize.Rows, settings.BoardSize.Cols, settings.MaxPlayers)
	return created, nil
}

// JoinRoom seats a new player in a lobby.
func (m *Manager) JoinRoom(ctx context.Context, roomID, playerName string) (shared.Room, game.Player, error) {
	var joined game.Player
	saved, err := m.mutate(ctx, roomID, func(r shared.Room) (shared.Room, error) {
		if r.GameState.Status != game.StatusLobby {
			return shared.Room{}, apperrors.New(apperrors.CodeGameNotActive, "Game has already started")
		}
		if len(r.GameState.Players) >= r.Settings.MaxPlayers {
			return shared.Room{}, apperrors.New(apperrors.CodeRoomFull, "Room is full")
		}
		name := strings.TrimSpace(playerName)
		if name == "" {
			name = "Player"
		}
		joined = m.newPlayer(name, len(r.GameState.Players))

		out := r
		out.GameState = r.GameState.Clone()
		out.GameState.Players = append(out.GameState.Players, joined)
		return out, nil
	})
	if err != nil {
		return shared.Room{}, game.Player{}, err
	}

	log.Printf("room %s: %s joined as %s", saved.ID, joined.Name, joined.ID)
	m.hub.Broadcast(saved.ID, ActionPlayerJoined, gin.H{
		"player":  joined,
		"players": saved.GameState.Players,
	})
	return saved, joined, nil
}

// StartGame moves a lobby to active with a fresh board. Only the host may
// start, and at least two players must be seated.
func (m *Manager) StartGame(ctx context.Context, roomID, requesterID string) (shared.Room, error) {
	saved, err := m.mutate(ctx, roomID, func(r shared.Room) (shared.Room, error) {
		st := r.GameState
		if _, ok := st.Player(requesterID); !ok {
			return shared.Room{}, apperrors.New(apperrors.CodePlayerNotFound, "Player not found")
		}
		if requesterID != r.HostID {
			return shared.Room{}, apperrors.New(apperrors.CodeNotHost, "Only the host can start the game")
		}
		if st.Status != game.StatusLobby {
			return shared.Room{}, apperrors.New(apperrors.CodeGameNotActive, "Game has already started")
		}
		if len(st.Players) < shared.MinPlayers {
			return shared.Room{}, apperrors.New(apperrors.CodeNotEnoughPlayers, "At least 2 players are required")
		}

		now := m.now()
		players := make([]game.Player, len(st.Players))
		for i, p := range st.Players {
			p.OrbCount = 0
			p.IsEliminated = false
			players[i] = p
		}

		out := r
		out.GameState = shared.GameState{
			Grid:            game.NewBoard(r.Settings.BoardSize.Rows, r.Settings.BoardSize.Cols),
			Players:         players,
			CurrentPlayerID: players[0].ID,
			TurnStartedAt:   now,
			StartedAt:       now,
			Status:          game.StatusActive,
		}
		out.History = shared.NewHistory(r.History.Depth)
		return out, nil
	})
	if err != nil {
		return shared.Room{}, err
	}

	log.Printf("room %s: game started with %d players", saved.ID, len(saved.GameState.Players))
	m.hub.Broadcast(saved.ID, ActionGameStarted, gin.H{
		"gameState": saved.GameState,
	})
	return saved, nil
}

// mutate is one optimistic attempt: read, compute, write if unchanged.
func (m *Manager) mutate(ctx context.Context, roomID string, fn func(shared.Room) (shared.Room, error)) (shared.Room, error) {
	cur, err := m.store.GetRoom(ctx, roomID)
	if err != nil {
		return shared.Room{}, m.storeError(roomID, "read room", err)
	}
	next, err := fn(cur)
	if err != nil {
		return shared.Room{}, err
	}
	saved, err := m.store.SaveRoomIfVersion(ctx, next, cur.Version)
	if err != nil {
		return shared.Room{}, m.storeError(roomID, "save room", err)
	}
	return saved, nil
}

func (m *Manager) storeError(roomID, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.Wrap(apperrors.CodeRoomNotFound, MsgRoomNotFound, err)
	case errors.Is(err, store.ErrConflict):
		log.Printf("room %s: %s lost a concurrent write", roomID, op)
		return apperrors.Wrap(apperrors.CodeConflict, "Room was modified concurrently, retry", err)
	default:
		return apperrors.Wrap(apperrors.CodeStoreFailure, op, err)
	}
}

func (m *Manager) fail(span trace.Span, roomID, op string, err error) {
	code := apperrors.CodeOf(err)
	span.SetAttributes(attribute.String("error.code", string(code)))
	if code.Kind() != apperrors.KindInternal {
		return
	}
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, string(code))
	log.Printf("room %s: %s failed: %v", roomID, op, err)
}

func (m *Manager) newPlayer(name string, seat int) game.Player {
	return game.Player{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       m.colors[seat%len(m.colors)],
		IsConnected: true,
	}
}

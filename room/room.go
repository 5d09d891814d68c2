package room

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mo-shahab/pong-sim/config"
	"github.com/mo-shahab/pong-sim/game"
	"github.com/mo-shahab/pong-sim/paddle"
)

var ErrNotFound = errors.New("room not found")

// Room hosts one match. Its methods serialize access to the engine so input
// and ticks may arrive from different goroutines.
type Room struct {
	ID     string
	Config config.Config

	engine *game.Engine
	Mu     sync.Mutex
}

func (r *Room) Tick() {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.engine.Tick()
}

func (r *Room) Handle(side paddle.Side, cmd paddle.Command) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.engine.Handle(side, cmd)
}

func (r *Room) Snapshot() game.Snapshot {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.engine.Snapshot()
}

// state of all the rooms
type Manager struct {
	Rooms  map[string]*Room
	Mu     sync.Mutex
	logger *log.Logger
}

func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		Rooms:  make(map[string]*Room),
		logger: logger,
	}
}

// helpers
func generateRoomId() string {
	return uuid.New().String()[:8]
}

// CreateRoom validates cfg and starts a fresh match under a new id. Engine
// options are passed through, the manager's logger is used unless one of them
// overrides it.
func (rm *Manager) CreateRoom(cfg config.Config, opts ...game.Option) (*Room, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	roomId := generateRoomId()
	for rm.Rooms[roomId] != nil {
		roomId = generateRoomId()
	}

	opts = append([]game.Option{game.WithLogger(rm.logger)}, opts...)
	room := &Room{
		ID:     roomId,
		Config: cfg,
		engine: game.NewEngine(cfg, opts...),
	}
	rm.Rooms[roomId] = room
	rm.logger.Printf("Created Room with room id: %s", roomId)

	return room, nil
}

func (rm *Manager) GetRoom(roomId string) (*Room, bool) {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	room, exists := rm.Rooms[roomId]
	return room, exists
}

func (rm *Manager) RemoveRoom(roomId string) error {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	if _, exists := rm.Rooms[roomId]; !exists {
		return fmt.Errorf("remove %s: %w", roomId, ErrNotFound)
	}
	delete(rm.Rooms, roomId)
	rm.logger.Printf("Room with id %s has been closed", roomId)
	return nil
}

// List returns the ids of all open rooms in sorted order.
func (rm *Manager) List() []string {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	ids := make([]string, 0, len(rm.Rooms))
	for id := range rm.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

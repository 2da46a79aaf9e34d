package tanks

import "github.com/vovakirdan/tui-tanks/internal/core"

// EventType identifies a simulation notification.
type EventType uint8

const (
	EventTankSpawned EventType = iota
	EventTankActivated
	EventTankMoved
	EventTankDestroyed
	EventExplosion
	EventProjectileFired
	EventProjectileMoved
	EventProjectileDestroyed
	EventQuadrantDestroyed
	EventFoodSpawned
	EventFoodConsumed
	EventStageStarted
	EventStageCleared
	EventGameOver
	eventTypeCount
)

var eventNames = [...]string{
	EventTankSpawned:         "tank_spawned",
	EventTankActivated:       "tank_activated",
	EventTankMoved:           "tank_moved",
	EventTankDestroyed:       "tank_destroyed",
	EventExplosion:           "explosion",
	EventProjectileFired:     "projectile_fired",
	EventProjectileMoved:     "projectile_moved",
	EventProjectileDestroyed: "projectile_destroyed",
	EventQuadrantDestroyed:   "terrain_quadrant_destroyed",
	EventFoodSpawned:         "food_spawned",
	EventFoodConsumed:        "food_consumed",
	EventStageStarted:        "stage_started",
	EventStageCleared:        "stage_cleared",
	EventGameOver:            "game_over",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalText encodes the type by name.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// EventTypes returns every event type in declaration order.
func EventTypes() []EventType {
	out := make([]EventType, 0, eventTypeCount)
	for t := EventType(0); t < eventTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// Event is a discrete notification for renderers and observers. Only the
// fields meaningful for the type are set.
type Event struct {
	Type  EventType     `json:"type"`
	Tick  uint64        `json:"tick"`
	ID    EntityID      `json:"id,omitempty"`
	X     int           `json:"x"`
	Y     int           `json:"y"`
	Dir   Direction     `json:"dir,omitempty"`
	Tank  TankKind      `json:"tank,omitempty"`
	Food  FoodKind      `json:"food,omitempty"`
	Slot  core.PlayerID `json:"slot,omitempty"`
	By    EntityID      `json:"by,omitempty"` // destroyer, consumer or owner
	Quad  QuadRef       `json:"quad,omitempty"`
	Stage int           `json:"stage,omitempty"`
}

func (s *Session) emit(ev Event) {
	ev.Tick = s.state.Tick
	s.events = append(s.events, ev)
}

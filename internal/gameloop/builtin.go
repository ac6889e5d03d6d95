package gameloop

import "time"

const (
	ModeEndless = "endless"
	ModeTimed   = "timed"
)

// DefaultTimeLimit is the round length of the timed mode
const DefaultTimeLimit = 60 * time.Second

// Endless runs until the player fails or leaves
type Endless struct {
	BaseMode
	Distance time.Duration
}

// NewEndless creates an endless mode
func NewEndless() *Endless {
	return &Endless{BaseMode: BaseMode{ModeName: ModeEndless}}
}

func (e *Endless) Initialize()                { e.Distance = 0 }
func (e *Endless) Update(delta time.Duration) { e.Distance += delta }

// Timed counts down a fixed round and calls OnExpire once when it runs out
type Timed struct {
	BaseMode
	Limit     time.Duration
	Remaining time.Duration
	OnExpire  func()
	expired   bool
}

// NewTimed creates a timed mode with the given limit
func NewTimed(limit time.Duration, onExpire func()) *Timed {
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	return &Timed{BaseMode: BaseMode{ModeName: ModeTimed}, Limit: limit, OnExpire: onExpire}
}

func (t *Timed) Initialize() {
	t.Remaining = t.Limit
	t.expired = false
}

func (t *Timed) OnStart() {
	if t.expired {
		t.Initialize()
	}
}

func (t *Timed) Update(delta time.Duration) {
	if t.expired {
		return
	}
	t.Remaining -= delta
	if t.Remaining > 0 {
		return
	}
	t.Remaining = 0
	t.expired = true
	if t.OnExpire != nil {
		t.OnExpire()
	}
}

package host

// EventUnauthorized is broadcast when a request comes back 401.
const EventUnauthorized = "unauthorized"

// Host is the environment the fetch wrappers run in. It stands in for
// the page-reload primitive and the global event target of a browser.
type Host interface {
	// Reload restarts the current session, like a full page reload.
	Reload()
	// Dispatch broadcasts a payload-less named event.
	Dispatch(name string)
}

// Env is a Host backed by a Bus and a reload callback.
type Env struct {
	Bus      *Bus
	OnReload func()
}

// NewEnv creates an Env. A nil bus gets a fresh one.
func NewEnv(bus *Bus, onReload func()) *Env {
	if bus == nil {
		bus = NewBus()
	}
	return &Env{Bus: bus, OnReload: onReload}
}

// Reload calls the reload callback, if any.
func (e *Env) Reload() {
	if e.OnReload != nil {
		e.OnReload()
	}
}

// Dispatch forwards the event to the bus.
func (e *Env) Dispatch(name string) {
	if e.Bus != nil {
		e.Bus.Dispatch(name)
	}
}

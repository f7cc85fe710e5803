package resilience

import "sync"

// FlightGroup collapses concurrent fetches of the same request path into a
// single upstream call. The first caller for a path becomes the leader and
// runs the fetch; callers arriving while it is in flight block until the
// leader finishes and receive its payload. Nothing is cached: once the
// leader returns, the path is free and the next caller fetches fresh.
//
// The zero value is ready to use.
type FlightGroup struct {
	mu       sync.Mutex
	inFlight map[string]*flight
}

type flight struct {
	done    chan struct{}
	payload []byte
	err     error
}

// Fetch runs fetch at most once per path at a time. The boolean reports
// whether this caller rode along on another caller's fetch instead of
// running its own.
func (g *FlightGroup) Fetch(path string, fetch func() ([]byte, error)) ([]byte, bool, error) {
	g.mu.Lock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flight)
	}
	if f, ok := g.inFlight[path]; ok {
		g.mu.Unlock()
		<-f.done
		return f.payload, true, f.err
	}
	f := &flight{done: make(chan struct{})}
	g.inFlight[path] = f
	g.mu.Unlock()

	f.payload, f.err = fetch()

	g.mu.Lock()
	delete(g.inFlight, path)
	g.mu.Unlock()
	close(f.done)

	return f.payload, false, f.err
}

package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlightGroup_CoalescesConcurrentFetches(t *testing.T) {
	t.Parallel()

	var g FlightGroup
	var fetches atomic.Int32
	release := make(chan struct{})

	const callers = 16
	var wg sync.WaitGroup
	sharedCount := atomic.Int32{}
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, shared, err := g.Fetch("/club-schedule-season/TOR/20232024", func() ([]byte, error) {
				fetches.Add(1)
				<-release
				return []byte(`{"games":[]}`), nil
			})
			if err != nil {
				t.Errorf("fetch: %v", err)
			}
			if string(payload) != `{"games":[]}` {
				t.Errorf("unexpected payload %q", payload)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	// Let the callers pile up behind the leader before it completes.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected one upstream fetch, got %d", got)
	}
	if got := sharedCount.Load(); got != callers-1 {
		t.Fatalf("expected %d riders, got %d", callers-1, got)
	}
}

func TestFlightGroup_DistinctPathsFetchIndependently(t *testing.T) {
	t.Parallel()

	var g FlightGroup
	var fetches atomic.Int32

	paths := []string{
		"/club-schedule-season/TOR/20232024",
		"/club-schedule-season/MTL/20232024",
		"/gamecenter/2023020001/boxscore",
	}
	var wg sync.WaitGroup
	for _, path := range paths {
		path := path
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, _, err := g.Fetch(path, func() ([]byte, error) {
				fetches.Add(1)
				return []byte(path), nil
			})
			if err != nil {
				t.Errorf("fetch %s: %v", path, err)
			}
			if string(payload) != path {
				t.Errorf("crossed payloads: key %s got %q", path, payload)
			}
		}()
	}
	wg.Wait()

	if got := fetches.Load(); got != int32(len(paths)) {
		t.Fatalf("expected %d fetches, got %d", len(paths), got)
	}
}

func TestFlightGroup_DoesNotCacheCompletedFetches(t *testing.T) {
	t.Parallel()

	var g FlightGroup
	var fetches int

	for i := 0; i < 3; i++ {
		payload, shared, err := g.Fetch("/player/8478402/landing", func() ([]byte, error) {
			fetches++
			return []byte("profile"), nil
		})
		if err != nil || shared {
			t.Fatalf("sequential fetch %d: shared=%v err=%v", i, shared, err)
		}
		if string(payload) != "profile" {
			t.Fatalf("unexpected payload %q", payload)
		}
	}
	if fetches != 3 {
		t.Fatalf("completed fetches must not be reused, got %d fetches", fetches)
	}
}

func TestFlightGroup_SharesLeaderError(t *testing.T) {
	t.Parallel()

	var g FlightGroup
	upstream := errors.New("upstream 503")
	release := make(chan struct{})

	var wg sync.WaitGroup
	errCount := atomic.Int32{}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := g.Fetch("/gamecenter/2023020002/boxscore", func() ([]byte, error) {
				<-release
				return nil, upstream
			})
			if errors.Is(err, upstream) {
				errCount.Add(1)
			}
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := errCount.Load(); got != 4 {
		t.Fatalf("expected every caller to see the leader's error, got %d", got)
	}
}

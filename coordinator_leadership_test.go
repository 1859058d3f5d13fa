package hbase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nicktelford/hbase/types"
)

func TestLeadership_MutualExclusion(t *testing.T) {
	t.Run("store create-if-absent admits exactly one of many racers", func(t *testing.T) {
		ctx := t.Context()

		store := newFakeStore()
		const numRacers = 16

		var wg sync.WaitGroup
		wins := make(chan Identity, numRacers)

		for i := range numRacers {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				id := Identity{Host: "node", Port: 16000 + n, StartedAt: int64(n)}
				created, err := store.CreateIfAbsent(ctx, DefaultElectionKey, id.Encode())
				require.NoError(t, err)
				if created {
					wins <- id
				}
			}(i)
		}

		wg.Wait()
		close(wins)

		var winners []Identity
		for id := range wins {
			winners = append(winners, id)
		}
		require.Len(t, winners, 1, "expected exactly one winning create")

		stored, err := types.DecodeIdentity(store.value(DefaultElectionKey))
		require.NoError(t, err)
		require.True(t, stored.Equal(winners[0]), "stored identity must match the winner")
	})

	t.Run("exactly one of many racing coordinators is elected", func(t *testing.T) {
		ctx := t.Context()

		store := newFakeStore()
		store.notifyOnChange = true
		const numCandidates = 8

		coords := make([]*Coordinator, numCandidates)
		procs := make([]*fakeProcess, numCandidates)
		results := make(chan bool, numCandidates)

		for i := range numCandidates {
			procs[i] = newFakeProcess()
			id := Identity{Host: "node", Port: 16000 + i, StartedAt: int64(i)}
			coords[i] = newTestCoordinator(t, store, id, procs[i])
		}

		for i := range numCandidates {
			go func(n int) {
				results <- coords[n].BecomeActive(ctx)
			}(i)
		}

		// Losers settle into Waiting; the winner reaches Elected.
		elected := 0
		for _, coord := range coords {
			state := waitTerminalOrWaiting(t, coord, 5*time.Second)
			if state == StateElected {
				elected++
			}
		}
		require.Equal(t, 1, elected, "expected exactly one elected coordinator")

		// Release the losers and collect every result.
		for _, coord := range coords {
			if coord.State() == StateWaiting {
				coord.Resign(ctx)
			}
		}

		wins := 0
		for range numCandidates {
			select {
			case isElected := <-results:
				if isElected {
					wins++
				}
			case <-time.After(5 * time.Second):
				t.Fatal("timeout collecting election results")
			}
		}
		require.Equal(t, 1, wins)

		for i, proc := range procs {
			require.Empty(t, proc.abortCalls(), "candidate %d aborted", i)
		}
	})
}

func TestLeadership_Liveness(t *testing.T) {
	t.Run("all waiters are released on key deletion and one succeeds", func(t *testing.T) {
		ctx := t.Context()

		store := newFakeStore()
		store.notifyOnChange = true
		incumbent := Identity{Host: "incumbent", Port: 16000, StartedAt: 1}
		store.put(DefaultElectionKey, incumbent.Encode())

		const numWaiters = 3
		coords := make([]*Coordinator, numWaiters)
		results := make(chan bool, numWaiters)

		for i := range numWaiters {
			id := Identity{Host: "node", Port: 16000 + i, StartedAt: int64(i)}
			coords[i] = newTestCoordinator(t, store, id, newFakeProcess())
			go func(n int) {
				results <- coords[n].BecomeActive(ctx)
			}(i)
		}

		for i := range numWaiters {
			require.NoError(t, <-coords[i].WaitState(StateWaiting, 5*time.Second),
				"candidate %d never started waiting", i)
		}

		// The incumbent disappears; every waiter must wake and re-attempt,
		// and the store admits exactly one of them.
		store.remove(DefaultElectionKey)
		store.fireDeleted(DefaultElectionKey)

		elected := 0
		for _, coord := range coords {
			state := waitTerminalOrWaiting(t, coord, 5*time.Second)
			if state == StateElected {
				elected++
			}
		}
		require.Equal(t, 1, elected, "expected exactly one promotion")

		for _, coord := range coords {
			if coord.State() == StateWaiting {
				coord.Resign(ctx)
			}
		}

		wins := 0
		for range numWaiters {
			select {
			case isElected := <-results:
				if isElected {
					wins++
				}
			case <-time.After(5 * time.Second):
				t.Fatal("timeout collecting promotion results")
			}
		}
		require.Equal(t, 1, wins)
	})
}

func TestLeadership_Hooks(t *testing.T) {
	t.Run("elected hook fires with the winning identity", func(t *testing.T) {
		ctx := t.Context()

		store := newFakeStore()
		id := testIdentity("node-1", 100)

		electedCh := make(chan Identity, 1)
		hooks := &Hooks{
			OnElected: func(_ context.Context, winner Identity) error {
				electedCh <- winner
				return nil
			},
		}

		coord := newTestCoordinator(t, store, id, newFakeProcess(), WithHooks(hooks))
		require.True(t, coord.BecomeActive(ctx))

		select {
		case winner := <-electedCh:
			require.True(t, winner.Equal(id))
		case <-time.After(5 * time.Second):
			t.Fatal("elected hook never fired")
		}
	})

	t.Run("state change hook observes the attempt", func(t *testing.T) {
		ctx := t.Context()

		store := newFakeStore()

		var mu sync.Mutex
		var transitions [][2]State
		hooks := &Hooks{
			OnStateChanged: func(_ context.Context, from, to State) error {
				mu.Lock()
				defer mu.Unlock()
				transitions = append(transitions, [2]State{from, to})
				return nil
			},
		}

		coord := newTestCoordinator(t, store, testIdentity("node-1", 100), newFakeProcess(), WithHooks(hooks))
		require.True(t, coord.BecomeActive(ctx))

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()

			return len(transitions) >= 2
		}, 5*time.Second, time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		require.Contains(t, transitions, [2]State{StateIdle, StateAttempting})
		require.Contains(t, transitions, [2]State{StateAttempting, StateElected})
	})
}

// waitTerminalOrWaiting polls until the coordinator settles into Elected,
// Stopped or Waiting, and returns that state.
func waitTerminalOrWaiting(t *testing.T, coord *Coordinator, timeout time.Duration) State {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		switch state := coord.State(); state {
		case StateElected, StateStopped, StateWaiting:
			return state
		default:
			time.Sleep(time.Millisecond)
		}
	}

	t.Fatalf("coordinator never settled, state=%s", coord.State())

	return StateIdle
}

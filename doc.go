// Package hbase provides leader election for cluster roles that must have
// exactly one active process, coordinated through a quorum-backed store.
//
// Among any number of candidate processes sharing a role, at most one
// believes it is active at any instant. When the active process disappears,
// one surviving candidate is promoted. The coordination store's atomic
// create-if-absent is the sole tie-breaker; no client-side arbitration is
// attempted.
//
// # Quick Start
//
//	store, err := natskv.NewStoreFromConn(ctx, nc, "election", 30*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	id := hbase.Identity{Host: "node-1", Port: 16000, StartedAt: time.Now().UnixMilli()}
//	coord, err := hbase.NewCoordinator(&hbase.Config{}, store, id, proc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store.Subscribe(coord)
//
//	if coord.BecomeActive(ctx) {
//	    // this process is now the active leader
//	}
//	defer coord.Resign(context.Background())
//
// BecomeActive blocks until this candidate wins the election or shutdown is
// requested. Candidates that lose the initial race wait for the incumbent's
// key to disappear and then race again.
//
// # Architecture
//
// The coordinator moves through an election state machine:
//
//	IDLE → ATTEMPTING → ELECTED
//	            ↓           ↑
//	       OBSERVING → WAITING (→ STOPPED on shutdown)
//
// Change notifications from the store drive reconciliation of the local
// leader flag; the blocking wait is released whenever the flag drops.
// Communication failures on the election path are escalated to the hosting
// process as fatal; status checks and resignation are best-effort.
//
// See the examples/ directory for complete working examples.
package hbase

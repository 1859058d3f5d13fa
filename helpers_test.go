package hbase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/nicktelford/hbase/types"
)

// fakeStore is an in-memory CoordinationStore with scriptable failures.
//
// Mutations are atomic under a single mutex, mirroring the linearizable
// create/read/delete the real store provides. When notifyOnChange is set,
// mutations deliver change notifications to subscribed listeners
// synchronously after the store lock is released; otherwise tests drive
// notifications explicitly via fireCreated/fireDeleted.
type fakeStore struct {
	mu        sync.Mutex
	data      map[string][]byte
	listeners []types.WatchListener

	notifyOnChange bool

	// afterCreate, when set, runs after every CreateIfAbsent outside the
	// store lock; lets tests interleave mutations deterministically.
	afterCreate func(created bool)

	createErr     error
	watchCheckErr error
	getErr        error
	deleteErr     error
	checkErr      error

	creates     int
	watchChecks int
	reads       int
	checks      int
	deletes     int
}

var _ types.CoordinationStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Subscribe(l types.WatchListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *fakeStore) CreateIfAbsent(_ context.Context, path string, value []byte) (bool, error) {
	s.mu.Lock()
	s.creates++
	if s.createErr != nil {
		err := s.createErr
		s.mu.Unlock()

		return false, err
	}
	created := false
	if _, ok := s.data[path]; !ok {
		s.data[path] = append([]byte(nil), value...)
		created = true
	}
	notify := s.notifyOnChange && created
	ls := s.snapshotListeners()
	hook := s.afterCreate
	s.mu.Unlock()

	if notify {
		for _, l := range ls {
			l.OnCreated(path)
		}
	}
	if hook != nil {
		hook(created)
	}

	return created, nil
}

func (s *fakeStore) WatchAndCheckExists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchChecks++
	if s.watchCheckErr != nil {
		return false, s.watchCheckErr
	}
	_, ok := s.data[path]

	return ok, nil
}

func (s *fakeStore) GetDataAndWatch(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.getErr != nil {
		return nil, s.getErr
	}
	value, ok := s.data[path]
	if !ok {
		return nil, nil
	}

	return append([]byte(nil), value...), nil
}

func (s *fakeStore) DeleteNode(_ context.Context, path string) error {
	s.mu.Lock()
	s.deletes++
	if s.deleteErr != nil {
		err := s.deleteErr
		s.mu.Unlock()

		return err
	}
	_, existed := s.data[path]
	delete(s.data, path)
	notify := s.notifyOnChange && existed
	ls := s.snapshotListeners()
	s.mu.Unlock()

	if notify {
		for _, l := range ls {
			l.OnDeleted(path)
		}
	}

	return nil
}

func (s *fakeStore) CheckExists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks++
	if s.checkErr != nil {
		return false, s.checkErr
	}
	_, ok := s.data[path]

	return ok, nil
}

// put seeds a value without firing notifications.
func (s *fakeStore) put(path string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[path] = append([]byte(nil), value...)
}

// remove drops a value without firing notifications.
func (s *fakeStore) remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, path)
}

// value returns the stored bytes for path, nil if absent.
func (s *fakeStore) value(path string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[path]
	if !ok {
		return nil
	}

	return append([]byte(nil), value...)
}

func (s *fakeStore) deleteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deletes
}

func (s *fakeStore) createCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.creates
}

// fireDeleted delivers a key-deleted notification to all listeners.
func (s *fakeStore) fireDeleted(path string) {
	s.mu.Lock()
	ls := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range ls {
		l.OnDeleted(path)
	}
}

// fireCreated delivers a key-created notification to all listeners.
func (s *fakeStore) fireCreated(path string) {
	s.mu.Lock()
	ls := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range ls {
		l.OnCreated(path)
	}
}

func (s *fakeStore) snapshotListeners() []types.WatchListener {
	ls := make([]types.WatchListener, len(s.listeners))
	copy(ls, s.listeners)

	return ls
}

// fakeProcess records abort escalations and exposes a toggleable stop flag.
type fakeProcess struct {
	stoppingFlag atomic.Bool

	mu     sync.Mutex
	aborts []abortCall
}

type abortCall struct {
	reason string
	cause  error
}

var _ types.Process = (*fakeProcess)(nil)

func newFakeProcess() *fakeProcess {
	return &fakeProcess{}
}

func (p *fakeProcess) IsStopping() bool {
	return p.stoppingFlag.Load()
}

func (p *fakeProcess) Abort(reason string, cause error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aborts = append(p.aborts, abortCall{reason: reason, cause: cause})
}

func (p *fakeProcess) abortCalls() []abortCall {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]abortCall(nil), p.aborts...)
}

// fakeStatusSink records phase updates in order.
type fakeStatusSink struct {
	mu       sync.Mutex
	statuses []string
}

var _ types.StatusSink = (*fakeStatusSink)(nil)

func (f *fakeStatusSink) SetStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
}

func (f *fakeStatusSink) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.statuses...)
}

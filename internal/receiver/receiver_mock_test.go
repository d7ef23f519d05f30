package receiver

import (
	"sync"

	"github.com/0443n/herald/internal/notification"
)

// fakeSource is a synthetic watch-event source.
type fakeSource struct {
	mu      sync.Mutex
	watched map[string]bool
	events  chan Event
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		watched: make(map[string]bool),
		events:  make(chan Event, 16),
	}
}

func (f *fakeSource) Add(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watched[dir] = true
	return nil
}

func (f *fakeSource) Remove(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.watched, dir)
	return nil
}

func (f *fakeSource) Events() <-chan Event { return f.events }

func (f *fakeSource) Close() error { return nil }

func (f *fakeSource) emit(dir, name string) {
	f.events <- Event{Dir: dir, Name: name}
}

func (f *fakeSource) isWatching(dir string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watched[dir]
}

// mockPresenter records presented notifications.
type mockPresenter struct {
	mu        sync.Mutex
	presented []notification.Notification
	err       error
}

func (m *mockPresenter) Present(n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presented = append(m.presented, n)
	return m.err
}

func (m *mockPresenter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.presented)
}

func (m *mockPresenter) titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, n := range m.presented {
		out = append(out, n.Title)
	}
	return out
}

func (m *mockPresenter) last() notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presented[len(m.presented)-1]
}

package session

import "sync"

// Locks tracks which sessions have a pipeline run or a state update in
// flight. Ids are held only while locked, so the set never outgrows the
// number of concurrent requests.
type Locks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// TryLock claims id without waiting. ok is false when id is already held.
func (l *Locks) TryLock(id string) (unlock func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held == nil {
		l.held = make(map[string]struct{})
	}
	if _, busy := l.held[id]; busy {
		return nil, false
	}
	l.held[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, id)
			l.mu.Unlock()
		})
	}, true
}

// Len is the number of ids currently held.
func (l *Locks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

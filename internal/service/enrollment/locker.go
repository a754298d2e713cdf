package enrollment

import "sync"

type sessionLock struct {
	sync.Mutex
	refs int
}

// SessionLocker serializes operations on one session. An entry lives only
// while someone holds or waits for it.
type SessionLocker struct {
	mutex    sync.Mutex
	sessions map[string]*sessionLock
}

func NewSessionLocker() *SessionLocker {
	return &SessionLocker{sessions: make(map[string]*sessionLock)}
}

func (l *SessionLocker) Lock(id string) {
	l.mutex.Lock()
	lock, ok := l.sessions[id]
	if !ok {
		lock = &sessionLock{}
		l.sessions[id] = lock
	}
	lock.refs++
	l.mutex.Unlock()

	lock.Lock()
}

func (l *SessionLocker) Unlock(id string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	lock, ok := l.sessions[id]
	if !ok {
		return
	}
	lock.refs--
	if lock.refs == 0 {
		delete(l.sessions, id)
	}
	lock.Unlock()
}

// Len reports how many sessions currently have a lock entry.
func (l *SessionLocker) Len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.sessions)
}

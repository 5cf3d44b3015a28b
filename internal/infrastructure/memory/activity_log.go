package memory

import (
	"sync"
	"time"

	"github.com/baechuer/eventflow/internal/application/reports"
)

const activityCap = 100

// ActivityLog is a bounded, newest-first feed of recorded actions.
// It backs the activity report; entries do not survive a restart.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []reports.ActivityEntry
	nextID  int
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{nextID: 1}
}

func (l *ActivityLog) Record(action, details, kind string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := reports.ActivityEntry{
		ID:      l.nextID,
		Action:  action,
		Details: details,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Type:    kind,
	}
	l.nextID++

	l.entries = append([]reports.ActivityEntry{e}, l.entries...)
	if len(l.entries) > activityCap {
		l.entries = l.entries[:activityCap]
	}
}

func (l *ActivityLog) Recent() []reports.ActivityEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]reports.ActivityEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

package service

import "sync"

// inflight tracks items with a decision currently being applied. Approve and
// reject (and the moderation resolutions) are mutually exclusive per item:
// the second caller is refused instead of queued, mirroring the disabled
// action buttons on an open review surface.
type inflight struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// begin marks id as in flight. Returns false when a decision for id is
// already running.
func (f *inflight) begin(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids == nil {
		f.ids = make(map[string]struct{})
	}
	if _, busy := f.ids[id]; busy {
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

// end clears the in-flight mark for id.
func (f *inflight) end(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

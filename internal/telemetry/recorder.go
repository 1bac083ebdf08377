package telemetry

import "sync"

type Event struct {
	Kind   string
	ID     string
	Params []any
	Count  int64
}

// Recorder keeps every reported event in memory so tests can assert on
// warnings and counts.
type Recorder struct {
	mutex  sync.Mutex
	events []Event
}

func (r *Recorder) add(e Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Event{Kind: "broken", ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Event{Kind: "warning", ID: id, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Event{Kind: "count", ID: id, Count: count})
}

// Events returns the recorded events of a kind, all events when kind is
// empty.
func (r *Recorder) Events(kind string) []Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := []Event{}
	for _, e := range r.events {
		if kind == "" || e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// IDs lists the ids of the recorded events of a kind, in order.
func (r *Recorder) IDs(kind string) []string {
	events := r.Events(kind)
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

package timetable

import "fmt"

// Op names the persistence call an Outcome describes.
type Op string

const (
	OpLoad Op = "load"
	OpSave Op = "save"
)

// Status classifies how a persistence call ended.
type Status string

const (
	StatusOK          Status = "ok"
	StatusEmpty       Status = "empty"       // load: nothing stored yet
	StatusUnavailable Status = "unavailable" // load: no storage medium
	StatusSkipped     Status = "skipped"     // save: no storage medium
	StatusCorrupt     Status = "corrupt"     // load: payload not decodable
	StatusFailed      Status = "failed"      // read or write error
)

// Outcome is the structured result of a Load or Save. Load and Save never
// return errors; callers inspect or observe the Outcome instead.
type Outcome struct {
	Op         Op
	Status     Status
	Key        string
	Revision   string
	Bytes      int
	Timetables int
	Err        error
}

// OK reports whether the call completed without a failure.
func (o Outcome) OK() bool {
	switch o.Status {
	case StatusOK, StatusEmpty:
		return true
	}
	return false
}

// Degraded reports whether the session is running without durable storage.
func (o Outcome) Degraded() bool {
	return o.Status == StatusUnavailable || o.Status == StatusSkipped
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s %s: %s (%v)", o.Op, o.Key, o.Status, o.Err)
	}
	return fmt.Sprintf("%s %s: %s", o.Op, o.Key, o.Status)
}

// Observer receives every Outcome produced by an Adapter.
type Observer func(Outcome)

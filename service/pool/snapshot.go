package pool

import (
	"fmt"

	"github.com/viant/memsim/model/process"
)

// Snapshot is a consistent view of the pool taken under its lock
type Snapshot struct {
	TotalMB     int `json:"totalMB"`
	AvailableMB int `json:"availableMB"`
	Running     int `json:"running"`
	Waiting     int `json:"waiting"`
	// LeakedMB is memory still held by interrupted processes when the pool
	// does not release on interrupt.
	LeakedMB int `json:"leakedMB,omitempty"`
}

func (s Snapshot) String() string {
	ret := fmt.Sprintf("available: %d/%d MB, running: %d, waiting: %d", s.AvailableMB, s.TotalMB, s.Running, s.Waiting)
	if s.LeakedMB > 0 {
		ret += fmt.Sprintf(", leaked: %d MB", s.LeakedMB)
	}
	return ret
}

// Decision is the outcome of Submit
type Decision string

const (
	DecisionAdmitted Decision = "admitted"
	DecisionQueued   Decision = "queued"
	DecisionRejected Decision = "rejected"
)

// NoticeKind identifies what happened to a process
type NoticeKind string

const (
	NoticeAdmitted    NoticeKind = "admitted"
	NoticeQueued      NoticeKind = "queued"
	NoticeRejected    NoticeKind = "rejected"
	NoticeCompleted   NoticeKind = "completed"
	NoticeInterrupted NoticeKind = "interrupted"
	NoticeWithdrawn   NoticeKind = "withdrawn"
)

// Notice reports a pool state change together with the snapshot taken right
// after it.
type Notice struct {
	Kind     NoticeKind
	Process  *process.Process
	Snapshot Snapshot
}

// Observer receives notices after the pool lock has been released
type Observer func(notice *Notice)

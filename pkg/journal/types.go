// Package journal provides the exclusive state lock and the intent journal
// for multi-step area operations.
//
// Opening the journal takes an exclusive lock on the state database, so two
// mutating iceland commands never interleave. Before a multi-step operation
// (switch, remove) touches any state, it records its intent; each completed
// step is recorded as it happens and the entry is cleared at the end. A
// command that finds a pending entry on startup knows the previous run was
// interrupted and can roll the operation forward.
//
// Example usage:
//
//	j, err := journal.New(journal.Config{Path: paths.StateDB()}, log)
//	if err != nil {
//	    return err // journal.ErrLocked if another command holds the lock
//	}
//	defer j.Close()
//
//	if err := j.Begin(journal.Op{Kind: journal.KindSwitch, From: "work", To: "math"}); err != nil {
//	    return err
//	}
//	// ... perform steps, calling j.Advance(step) after each
//	return j.Complete()
package journal

import "time"

// Kind identifies a journaled operation.
type Kind string

// Journaled operation kinds.
const (
	KindSwitch Kind = "switch"
	KindRemove Kind = "remove"
)

// Step is the last completed step of an operation.
type Step string

// Steps of a switch.
const (
	StepBegun         Step = "begun"
	StepSessionClosed Step = "session_closed"
	StepTimerStarted  Step = "timer_started"
	StepPointerSet    Step = "pointer_set"
)

// Steps of a remove.
const (
	StepDirRemoved        Step = "dir_removed"
	StepConfigSaved       Step = "config_saved"
	StepPointerReassigned Step = "pointer_reassigned"
)

// Op is a journaled operation.
type Op struct {
	Kind Kind `json:"kind"`

	// From is the current area when the operation began (switch only).
	From string `json:"from,omitempty"`

	// To is the target area: the switch destination or the removed area.
	To string `json:"to"`

	// Step is the last completed step.
	Step Step `json:"step"`

	// Started is when the operation was recorded.
	Started time.Time `json:"started"`

	// Updated is when Step was last advanced.
	Updated time.Time `json:"updated"`
}

// Done reports whether step has already been completed, given that steps
// of one kind complete in declaration order.
func (o *Op) Done(step Step) bool {
	order := stepOrder[o.Kind]
	cur, ok1 := order[o.Step]
	want, ok2 := order[step]
	return ok1 && ok2 && cur >= want
}

var stepOrder = map[Kind]map[Step]int{
	KindSwitch: {StepBegun: 0, StepSessionClosed: 1, StepTimerStarted: 2, StepPointerSet: 3},
	KindRemove: {StepBegun: 0, StepDirRemoved: 1, StepConfigSaved: 2, StepPointerReassigned: 3},
}

// Journal records in-flight operations while holding the state lock.
type Journal interface {
	// Begin records op as pending with Step set to StepBegun.
	//
	// Returns ErrPending if another operation is still recorded.
	Begin(op Op) error

	// Advance records step as the last completed step of the pending op.
	//
	// Returns ErrNoPending if no operation is recorded.
	Advance(step Step) error

	// Pending returns the recorded operation, or nil if there is none.
	Pending() (*Op, error)

	// Complete clears the pending operation.
	Complete() error

	// Close releases the lock.
	Close() error
}

// Config contains journal configuration.
type Config struct {
	// Path is the BoltDB file path.
	Path string

	// Timeout is how long to wait for the lock (default: 1 second).
	Timeout time.Duration

	// Now returns the current time (default: time.Now).
	Now func() time.Time
}

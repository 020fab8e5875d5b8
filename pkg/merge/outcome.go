package merge

// Outcome is what merging one snapshot did to its canonical record.
type Outcome int

const (
	// OutcomeCreated means a new canonical record was built from the snapshot.
	OutcomeCreated Outcome = iota
	// OutcomeUpdated means the snapshot replaced the record's content.
	OutcomeUpdated
	// OutcomeSkipped means the snapshot was applied before.
	OutcomeSkipped
	// OutcomeRecorded means a newer snapshot was applied already, so the
	// snapshot was only added to the history.
	OutcomeRecorded
	// OutcomeDeleted means an archiving snapshot removed an instance.
	OutcomeDeleted
	// OutcomeIgnored means an archiving snapshot arrived for an instance that
	// never existed.
	OutcomeIgnored
)

var outcomeNames = map[Outcome]string{
	OutcomeCreated:  "created",
	OutcomeUpdated:  "updated",
	OutcomeSkipped:  "skipped",
	OutcomeRecorded: "recorded",
	OutcomeDeleted:  "deleted",
	OutcomeIgnored:  "ignored",
}

func (outcome Outcome) String() string {
	if name, ok := outcomeNames[outcome]; ok {
		return name
	}
	return "unknown"
}

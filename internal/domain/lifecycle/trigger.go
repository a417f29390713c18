package lifecycle

// Trigger moves a dispatcher between run states
type Trigger string

const (
	TriggerStart  Trigger = "START"
	TriggerFinish Trigger = "FINISH"
	TriggerAbort  Trigger = "ABORT"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}

package core

// Bus channels emitted by the facade. Lifecycle checkpoints carry the *Core
// itself as payload so extensions can hook in; error and warning reports
// carry Fault and Notice payloads.
const (
	EventError      = "error"
	EventWarning    = "warning"
	EventAfterInit  = "afterInit"
	EventAfterStart = "afterStart"
	EventAfterStop  = "afterStop"
)

// Fault is the payload of EventError: a caught failure attributed to the
// unit and lifecycle phase it came from.
type Fault struct {
	Site string // module or extension id
	Op   string // "register", "init" or "start"
	Err  error
}

// Notice is the payload of EventWarning: recoverable misuse that degraded
// an operation to a no-op.
type Notice struct {
	Site    string
	Message string
}

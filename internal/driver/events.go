package driver

// Stage identifies one pipeline phase for progress reporting.
type Stage uint8

const (
	StageIngest Stage = iota
	StageRegistry
	StageResolve
	StageAssemble
	StageChunk
	StageWrite
)

// Status is the reported state of a stage or file.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification. File is empty for stage-level events.
type Event struct {
	Stage  Stage
	File   string
	Status Status
}

// emitter sends events without blocking the pipeline; a nil channel drops
// everything.
type emitter struct {
	ch chan<- Event
}

func (e emitter) send(ev Event) {
	if e.ch == nil {
		return
	}
	select {
	case e.ch <- ev:
	default:
	}
}

func (e emitter) stage(s Stage, st Status) {
	e.send(Event{Stage: s, Status: st})
}

func (e emitter) file(s Stage, path string, st Status) {
	e.send(Event{Stage: s, File: path, Status: st})
}

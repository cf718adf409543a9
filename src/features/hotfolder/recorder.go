package hotfolder

// Forwarding targets reported to a Recorder.
const (
	TargetEngine   = "engine"
	TargetNotifier = "notifier"
)

// Recorder receives pipeline observations. Implementations must be safe for concurrent use.
type Recorder interface {
	SessionsActive(count int)
	EventSettled(folderID string)
	EventFiltered(folderID string)
	Forwarded(target string, err error)
}

type nopRecorder struct{}

func (nopRecorder) SessionsActive(int)      {}
func (nopRecorder) EventSettled(string)     {}
func (nopRecorder) EventFiltered(string)    {}
func (nopRecorder) Forwarded(string, error) {}

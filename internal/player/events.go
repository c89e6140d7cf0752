package player

// EventKind enumerates the player lifecycle notifications.
type EventKind int

const (
	EventReady EventKind = iota
	EventNotReady
	EventInitializationError
	EventAuthenticationError
	EventAccountError
	EventPlaybackError
)

// Event is a lifecycle notification. DeviceID is set for ready/not-ready, Message for errors.
type Event struct {
	Kind     EventKind
	DeviceID string
	Message  string
}

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventNotReady:
		return "not_ready"
	case EventInitializationError:
		return "initialization_error"
	case EventAuthenticationError:
		return "authentication_error"
	case EventAccountError:
		return "account_error"
	case EventPlaybackError:
		return "playback_error"
	default:
		return "unknown"
	}
}

// Title is the display heading for error events, "" otherwise.
func (k EventKind) Title() string {
	switch k {
	case EventInitializationError:
		return "Initialization Error:"
	case EventAuthenticationError:
		return "Authentication Error:"
	case EventAccountError:
		return "Account Error:"
	case EventPlaybackError:
		return "Playback Error:"
	default:
		return ""
	}
}

// IsError reports whether the event belongs to the error class.
func (k EventKind) IsError() bool {
	return k.Title() != ""
}

package domain

// MessageKind discriminates ChangeMessage variants.
type MessageKind int

const (
	// MessageFileChanged signals that the document set changed.
	MessageFileChanged MessageKind = iota

	// MessageKeepAlive is a periodic no-op keeping idle transports open.
	MessageKeepAlive
)

// String returns the wire name of the message kind.
func (k MessageKind) String() string {
	switch k {
	case MessageFileChanged:
		return "file-changed"
	case MessageKeepAlive:
		return "ping"
	default:
		return "unknown"
	}
}

// ChangeMessage is delivered to every registered listener.
type ChangeMessage struct {
	Kind MessageKind

	// Timestamp is the Unix time in seconds; set for MessageFileChanged.
	Timestamp int64
}

// FileChanged builds a change notification stamped with unixSeconds.
func FileChanged(unixSeconds int64) ChangeMessage {
	return ChangeMessage{Kind: MessageFileChanged, Timestamp: unixSeconds}
}

// KeepAlive builds a keep-alive message.
func KeepAlive() ChangeMessage {
	return ChangeMessage{Kind: MessageKeepAlive}
}

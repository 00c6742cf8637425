package domain

// FileEventKind is the kind of a filesystem change.
type FileEventKind int

const (
	FileCreated FileEventKind = iota
	FileModified
	FileRemoved
)

// String returns the event kind name.
func (k FileEventKind) String() string {
	switch k {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// FileEvent is a filesystem change affecting one or more paths.
// Renames arrive as a removal of the old path followed by a creation.
type FileEvent struct {
	Kind  FileEventKind
	Paths []string
}

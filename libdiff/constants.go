package libdiff

// Kind says what happened to the node at a change's path.
type Kind string

const (
	InsertKind  Kind = "insert"
	DeleteKind  Kind = "delete"
	ReplaceKind Kind = "replace"
	// EditKind is a change to a string value, carried as a patch.
	EditKind Kind = "edit"
)

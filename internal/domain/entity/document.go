package entity

const (
	DefaultRowClass     = "item-message"
	DefaultTaskIDAttr   = "data-task_id"
	DefaultChecksumAttr = "data-checksum"
)

// Selector describes which elements count as task anchors.
type Selector struct {
	// RowClass is the class of the container every anchor must sit in.
	// Empty disables the container requirement.
	RowClass     string
	Markers      MarkerSet
	TaskIDAttr   string
	ChecksumAttr string
}

// Target locates one element: by element id first, then by TaskIDAttr value.
type Target struct {
	Key        string
	TaskIDAttr string
}

// RowChange is applied to the closest row container of a target (the target itself included).
type RowChange struct {
	RowClass string
	Add      string
	Remove   []string
}

package vdom

// PatchOp is the outcome of reconciling one node.
type PatchOp uint8

const (
	OpMount   PatchOp = 0x01 // Initial materialize at mount
	OpInherit PatchOp = 0x02 // Same node, range inherited
	OpReplace PatchOp = 0x03 // Different node, rebuilt in the old range
	OpAppend  PatchOp = 0x04 // New trailing child in a fresh range
	OpRemove  PatchOp = 0x05 // Trailing child dropped, content deleted
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case OpMount:
		return "Mount"
	case OpInherit:
		return "Inherit"
	case OpReplace:
		return "Replace"
	case OpAppend:
		return "Append"
	case OpRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (op PatchOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// Record describes one reconciliation outcome.
type Record struct {
	Op    PatchOp `json:"op"`
	Kind  VKind   `json:"-"`
	Tag   string  `json:"tag"`
	Depth int     `json:"depth"`
	Node  *VNode  `json:"-"`
}

// Stats counts reconciliation outcomes.
type Stats struct {
	Mounted   int `json:"mounted"`
	Inherited int `json:"inherited"`
	Replaced  int `json:"replaced"`
	Appended  int `json:"appended"`
	Removed   int `json:"removed"`
}

func (s *Stats) add(op PatchOp) {
	switch op {
	case OpMount:
		s.Mounted++
	case OpInherit:
		s.Inherited++
	case OpReplace:
		s.Replaced++
	case OpAppend:
		s.Appended++
	case OpRemove:
		s.Removed++
	}
}

// Sub returns the outcome counts accumulated since prev.
func (s Stats) Sub(prev Stats) Stats {
	return Stats{
		Mounted:   s.Mounted - prev.Mounted,
		Inherited: s.Inherited - prev.Inherited,
		Replaced:  s.Replaced - prev.Replaced,
		Appended:  s.Appended - prev.Appended,
		Removed:   s.Removed - prev.Removed,
	}
}

func recordTag(n *VNode) string {
	if n.Kind == KindText {
		return TextType
	}
	return n.Tag
}

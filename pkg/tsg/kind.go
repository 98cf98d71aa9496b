package tsg

// Kind identifies the element an attribute overlay record targets. Its
// value is the record tag used in TSG text.
type Kind byte

const (
	KindGraph Kind = 'G'
	KindNode  Kind = 'N'
	KindEdge  Kind = 'E'
	KindChain Kind = 'C'
	KindPath  Kind = 'P'
	KindSet   Kind = 'U'
	KindLink  Kind = 'L'
)

var kindNames = map[Kind]string{
	KindGraph: "graph",
	KindNode:  "node",
	KindEdge:  "edge",
	KindChain: "chain",
	KindPath:  "path",
	KindSet:   "set",
	KindLink:  "link",
}

// ParseKind maps a record tag to its Kind.
func ParseKind(tag string) (Kind, bool) {
	if len(tag) != 1 {
		return 0, false
	}
	k := Kind(tag[0])
	_, ok := kindNames[k]
	return k, ok
}

// Tag returns the single-letter record tag.
func (k Kind) Tag() string { return string(k) }

// String returns the lower-case element name ("node", "path", ...).
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

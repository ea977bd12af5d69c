package types

// Fact names understood by conditional icon rules
const (
	FactDir    = "dir"
	FactHidden = "hidden"
	FactLink   = "link"
	FactOrphan = "orphan"
	FactDummy  = "dummy"
	FactBlock  = "block"
	FactChar   = "char"
	FactFifo   = "fifo"
	FactSock   = "sock"
	FactExec   = "exec"
	FactSticky = "sticky"
)

// Facts lists every fact name in a stable order
var Facts = []string{
	FactDir,
	FactHidden,
	FactLink,
	FactOrphan,
	FactDummy,
	FactBlock,
	FactChar,
	FactFifo,
	FactSock,
	FactExec,
	FactSticky,
}

// Entry is the read-only view of a filesystem entry the resolver needs.
// Implementations must not change between calls made for a single query.
type Entry interface {
	// Name returns the display name, usually the last path element
	Name() string

	// IsDir reports whether the entry is a directory
	IsDir() bool

	// Path returns the slash or OS separated path used for glob rules
	Path() string

	// Has looks up a named boolean fact. known is false when the entry
	// has no answer for name.
	Has(name string) (value bool, known bool)
}

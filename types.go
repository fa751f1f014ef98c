package cqldbc

import "fmt"

// Consistency is the per-query replication acknowledgment level. It is
// threaded through to the session on every execution and never interpreted
// by this layer.
type Consistency uint16

const (
	Any Consistency = iota
	One
	Two
	Three
	Quorum
	All
	LocalQuorum
	EachQuorum
	LocalOne
)

func (c Consistency) String() string {
	switch c {
	case Any:
		return "ANY"
	case One:
		return "ONE"
	case Two:
		return "TWO"
	case Three:
		return "THREE"
	case Quorum:
		return "QUORUM"
	case All:
		return "ALL"
	case LocalQuorum:
		return "LOCAL_QUORUM"
	case EachQuorum:
		return "EACH_QUORUM"
	case LocalOne:
		return "LOCAL_ONE"
	default:
		return fmt.Sprintf("Consistency(%d)", uint16(c))
	}
}

// ResultSetType describes cursor traversal capabilities requested by the
// caller. The backend only honors forward-only cursors, but every enumerated
// value is accepted and stored.
type ResultSetType int

const (
	TypeForwardOnly ResultSetType = iota
	TypeScrollInsensitive
	TypeScrollSensitive
)

func (t ResultSetType) String() string {
	switch t {
	case TypeForwardOnly:
		return "FORWARD_ONLY"
	case TypeScrollInsensitive:
		return "SCROLL_INSENSITIVE"
	case TypeScrollSensitive:
		return "SCROLL_SENSITIVE"
	default:
		return fmt.Sprintf("ResultSetType(%d)", int(t))
	}
}

// Concurrency describes whether a result set may be updated in place.
type Concurrency int

const (
	ConcurReadOnly Concurrency = iota
	ConcurUpdatable
)

func (c Concurrency) String() string {
	switch c {
	case ConcurReadOnly:
		return "READ_ONLY"
	case ConcurUpdatable:
		return "UPDATABLE"
	default:
		return fmt.Sprintf("Concurrency(%d)", int(c))
	}
}

// Holdability describes cursor behavior across commits. The backend has no
// transactions, so cursors effectively always hold; both values are accepted.
type Holdability int

const (
	HoldCursorsOverCommit Holdability = iota
	CloseCursorsAtCommit
)

func (h Holdability) String() string {
	switch h {
	case HoldCursorsOverCommit:
		return "HOLD_CURSORS_OVER_COMMIT"
	case CloseCursorsAtCommit:
		return "CLOSE_CURSORS_AT_COMMIT"
	default:
		return fmt.Sprintf("Holdability(%d)", int(h))
	}
}

// FetchDirection is a row traversal hint for result sets.
type FetchDirection int

const (
	FetchForward FetchDirection = iota
	FetchReverse
	FetchUnknown
)

func (d FetchDirection) String() string {
	switch d {
	case FetchForward:
		return "FORWARD"
	case FetchReverse:
		return "REVERSE"
	case FetchUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("FetchDirection(%d)", int(d))
	}
}

// GeneratedKeysMode selects whether an execute call should surface
// server-generated keys. The backend never generates keys, so
// ReturnGeneratedKeys is valid to request but always unsupported.
type GeneratedKeysMode int

const (
	NoGeneratedKeys GeneratedKeysMode = iota
	ReturnGeneratedKeys
)

func (m GeneratedKeysMode) String() string {
	switch m {
	case NoGeneratedKeys:
		return "NO_GENERATED_KEYS"
	case ReturnGeneratedKeys:
		return "RETURN_GENERATED_KEYS"
	default:
		return fmt.Sprintf("GeneratedKeysMode(%d)", int(m))
	}
}

// MoreResultsAction selects what happens to the current result set when the
// caller advances to the next one. Only CloseCurrentResult is supported; the
// backend never produces more than one result set per statement.
type MoreResultsAction int

const (
	CloseCurrentResult MoreResultsAction = iota
	KeepCurrentResult
	CloseAllResults
)

func (a MoreResultsAction) String() string {
	switch a {
	case CloseCurrentResult:
		return "CLOSE_CURRENT_RESULT"
	case KeepCurrentResult:
		return "KEEP_CURRENT_RESULT"
	case CloseAllResults:
		return "CLOSE_ALL_RESULTS"
	default:
		return fmt.Sprintf("MoreResultsAction(%d)", int(a))
	}
}

// ResponseKind tags the shape of a raw backend response.
type ResponseKind int

const (
	// ResponseRows is a row-producing response.
	ResponseRows ResponseKind = iota + 1
	// ResponseCount carries a numeric update count.
	ResponseCount
	// ResponseVoid is a successful response with no payload, e.g. from a
	// schema-altering statement.
	ResponseVoid
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseRows:
		return "ROWS"
	case ResponseCount:
		return "COUNT"
	case ResponseVoid:
		return "VOID"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

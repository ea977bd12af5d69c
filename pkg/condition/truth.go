package condition

// Truth is the result of evaluating a condition. Unknown is produced when an
// atom has no answer and the known atoms cannot decide the outcome.
type Truth int8

const (
	Unknown Truth = iota
	False
	True
)

// Of converts a plain bool
func Of(b bool) Truth {
	if b {
		return True
	}
	return False
}

// Not negates t; Unknown stays Unknown
func (t Truth) Not() Truth {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// And is Kleene conjunction: False dominates, then Unknown
func (t Truth) And(o Truth) Truth {
	if t == False || o == False {
		return False
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}
	return True
}

// Or is Kleene disjunction: True dominates, then Unknown
func (t Truth) Or(o Truth) Truth {
	if t == True || o == True {
		return True
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}
	return False
}

// IsTrue reports whether t is exactly True
func (t Truth) IsTrue() bool {
	return t == True
}

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

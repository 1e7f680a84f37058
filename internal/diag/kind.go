package diag

import "fmt"

// Kind identifies which unused-declaration diagnostic was reported.
type Kind uint8

const (
	// KindParameter is reported for a function parameter that is never used.
	KindParameter Kind = iota + 1
	// KindVariable is reported for a local variable that is never used.
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindParameter:
		return "Parameter"
	case KindVariable:
		return "Variable"
	}
	return "Unknown"
}

// ParseKind accepts exactly the literals the compiler prints.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Parameter":
		return KindParameter, nil
	case "Variable":
		return KindVariable, nil
	default:
		return 0, fmt.Errorf("unknown warning kind %q (expected Parameter|Variable)", s)
	}
}

// MarshalText lets Kind travel through JSON and msgpack as its literal.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindParameter && k != KindVariable {
		return nil, fmt.Errorf("invalid warning kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

package regstore

import "fmt"

// Reader provides read-only access to the store.
type Reader interface {
	// ReadString returns a string value. Plain and expandable strings are
	// both returned verbatim.
	ReadString(path Path, name string) (string, error)

	// ReadInt returns a 32-bit integer (DWORD) value.
	ReadInt(path Path, name string) (uint32, error)
}

// ValueKind is the stored type of a value.
type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindExpandString
	KindDWord
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "REG_SZ"
	case KindExpandString:
		return "REG_EXPAND_SZ"
	case KindDWord:
		return "REG_DWORD"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a typed store value.
type Value struct {
	Kind ValueKind
	Str  string
	Int  uint32
}

// StringValue returns a REG_SZ value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// ExpandStringValue returns a REG_EXPAND_SZ value.
func ExpandStringValue(s string) Value {
	return Value{Kind: KindExpandString, Str: s}
}

// DWordValue returns a REG_DWORD value.
func DWordValue(n uint32) Value {
	return Value{Kind: KindDWord, Int: n}
}

func (v Value) isString() bool {
	return v.Kind == KindString || v.Kind == KindExpandString
}

package value

// ObjString is an immutable byte sequence with a precomputed hash. Every
// ObjString in a running program is deduplicated through lang/intern: two
// strings with equal bytes are always the same *ObjString, which is what
// lets Equal compare strings by reference.
type ObjString struct {
	Header
	Chars string
	Hash  uint32
}

var _ Obj = (*ObjString)(nil)

// FNV1a computes the 32-bit FNV-1a hash used to key interned strings.
func FNV1a(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// NewString wraps a value returned by the intern pool. It is exported so
// lang/intern (which must not import lang/value's constructors circularly
// for every object kind) can build ObjString values; lang/intern is the only
// expected caller in practice, since every other path to a string value
// should go through interning.
func NewString(chars string) *ObjString {
	return &ObjString{Header: Header{Type: ObjTypeString}, Chars: chars, Hash: FNV1a(chars)}
}

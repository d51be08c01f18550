package types

import (
	"fmt"

	"fortio.org/safecast"
)

// LiteralInfo stores the payload of a literal type: the primitive kind it
// widens to and the canonical source text of the value ("true", "42",
// "hello"). Numbers are canonicalized by the caller before registration.
type LiteralInfo struct {
	Kind Kind
	Text string
}

// RegisterLiteral creates or finds the literal type of the given primitive
// kind and canonical text. Non-primitive kinds yield NoTypeID.
func (in *Interner) RegisterLiteral(kind Kind, text string) TypeID {
	if !kind.Primitive() {
		return NoTypeID
	}
	key := "\xFF" + string(byte(KindLiteral)) + string(byte(kind)) + text
	if id, ok := in.lookupComposite(key); ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.literals))
	if err != nil {
		panic(fmt.Errorf("literal info overflow: %w", err))
	}
	in.literals = append(in.literals, LiteralInfo{Kind: kind, Text: text})
	return in.storeComposite(key, Type{Kind: KindLiteral, Payload: slot})
}

// LiteralInfo retrieves literal metadata by TypeID.
func (in *Interner) LiteralInfo(id TypeID) (*LiteralInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLiteral {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.literals) {
		return nil, false
	}
	return &in.literals[tt.Payload], true
}

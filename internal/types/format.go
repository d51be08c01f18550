package types

import (
	"strings"

	"lattice/internal/source"
)

// Format renders a type in source syntax for diagnostics. Field and
// template names are resolved through the provided string interner.
func (in *Interner) Format(id TypeID, names *source.Interner) string {
	var sb strings.Builder
	in.format(&sb, id, names, 0)
	return sb.String()
}

func (in *Interner) format(sb *strings.Builder, id TypeID, names *source.Interner, depth int) {
	if depth > equalDepthLimit {
		sb.WriteString("...")
		return
	}
	tt, ok := in.Lookup(id)
	if !ok {
		sb.WriteString("<invalid>")
		return
	}

	switch tt.Kind {
	case KindAny, KindUnknown, KindNever, KindBool, KindNumber, KindString:
		sb.WriteString(tt.Kind.String())

	case KindLiteral:
		info, _ := in.LiteralInfo(id)
		if info == nil {
			sb.WriteString("<invalid>")
			return
		}
		if info.Kind == KindString {
			sb.WriteByte('"')
			sb.WriteString(info.Text)
			sb.WriteByte('"')
			return
		}
		sb.WriteString(info.Text)

	case KindArray:
		elem := in.Kind(tt.Elem)
		// Unions and functions need parens to read back unambiguously.
		if elem == KindUnion || elem == KindFn {
			sb.WriteByte('(')
			in.format(sb, tt.Elem, names, depth+1)
			sb.WriteString(")[]")
			return
		}
		in.format(sb, tt.Elem, names, depth+1)
		sb.WriteString("[]")

	case KindTuple:
		info, _ := in.TupleInfo(id)
		sb.WriteByte('[')
		if info != nil {
			for i, e := range info.Elems {
				if i > 0 {
					sb.WriteString(", ")
				}
				in.format(sb, e, names, depth+1)
			}
		}
		sb.WriteByte(']')

	case KindObject:
		info, _ := in.ObjectInfo(id)
		sb.WriteByte('{')
		if info != nil {
			for i, f := range info.Fields {
				if i > 0 {
					sb.WriteString(", ")
				}
				if f.Readonly {
					sb.WriteString("readonly ")
				}
				sb.WriteString(lookupName(names, f.Name))
				if f.Optional {
					sb.WriteByte('?')
				}
				sb.WriteString(": ")
				in.format(sb, f.Type, names, depth+1)
			}
		}
		sb.WriteByte('}')

	case KindUnion:
		info, _ := in.UnionInfo(id)
		if info != nil {
			for i, m := range info.Members {
				if i > 0 {
					sb.WriteString(" | ")
				}
				in.format(sb, m, names, depth+1)
			}
		}

	case KindFn:
		info, _ := in.FnInfo(id)
		sb.WriteByte('(')
		if info != nil {
			for i, p := range info.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				in.format(sb, p, names, depth+1)
			}
		}
		sb.WriteString(") => ")
		if info != nil {
			in.format(sb, info.Result, names, depth+1)
		}

	case KindGeneric:
		info, _ := in.GenericInfo(id)
		if info == nil {
			sb.WriteString("<invalid>")
			return
		}
		sb.WriteString(lookupName(names, info.Base))
		sb.WriteByte('<')
		for i, a := range info.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			in.format(sb, a, names, depth+1)
		}
		sb.WriteByte('>')

	default:
		sb.WriteString("<invalid>")
	}
}

func lookupName(names *source.Interner, id source.StringID) string {
	if names == nil {
		return "?"
	}
	s, ok := names.Lookup(id)
	if !ok {
		return "?"
	}
	return s
}

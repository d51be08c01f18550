package diag

import "fmt"

// Code identifies a diagnostic kind. Ranges are reserved per phase:
// 1xxx lexer, 2xxx parser, 3xxx checker.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectTypeExpr     Code = 2004
	SynDuplicateField     Code = 2005
	SynExpectGuard        Code = 2006
	SynBadTransformArg    Code = 2007

	// Checking
	CheckTypeMismatch      Code = 3001
	CheckImmutableBinding  Code = 3002
	CheckReadonlyViolation Code = 3003
	CheckUnnarrowedUnknown Code = 3004
	CheckUnknownKey        Code = 3005
	CheckRecursionLimit    Code = 3006
	CheckUnknownName       Code = 3007
	CheckRedeclaredName    Code = 3008
	CheckNotAnObject       Code = 3009
	CheckGuardNotUnion     Code = 3010
	CheckUnreachableBranch Code = 3011
	CheckBadTypeTag        Code = 3012
)

func (c Code) String() string {
	switch {
	case c == UnknownCode:
		return "LAT0000"
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("LEX%04d", uint16(c)-1000)
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("SYN%04d", uint16(c)-2000)
	case c >= 3000 && c < 4000:
		return fmt.Sprintf("CHK%04d", uint16(c)-3000)
	default:
		return fmt.Sprintf("LAT%04d", uint16(c))
	}
}

package ast

import (
	"fmt"
	"sort"
)

// ReservedWord enumerates the punctuation, operators and keywords of the
// language. The zero value is not a valid reserved word.
type ReservedWord int

const (
	_ ReservedWord = iota

	// ── Delimiters ──────────────────────────────────────────────────────────

	Assign             // =
	LeftParenthesis    // (
	RightParenthesis   // )
	LeftCurly          // {
	RightCurly         // }
	LeftSquareBracket  // [
	RightSquareBracket // ]
	Dot                // .
	Comma              // ,
	SemiColon          // ;
	Colon              // :
	Arrow              // =>

	// ── Arithmetic ──────────────────────────────────────────────────────────

	Add         // +
	Sub         // -
	Mult        // *
	Div         // /
	Mod         // %
	Exponential // **

	// ── Comparison ──────────────────────────────────────────────────────────

	Less        // <
	Greater     // >
	LessOrEq    // <=
	GreaterOrEq // >=
	Equal       // ==
	NotEqual    // !=

	// ── Bitwise and logical ─────────────────────────────────────────────────

	LeftShift          // <<
	RightShift         // >>
	UnsignedRightShift // >>>
	And                // &
	Or                 // |
	Xor                // ^
	Not                // ~
	LogicalNot         // !
	LogicalAnd         // &&
	LogicalOr          // ||

	// ── Compound assignment ─────────────────────────────────────────────────

	AdditiveAssign           // +=
	SubtractiveAssign        // -=
	MultiplicativeAssign     // *=
	DivisiveAssign           // /=
	ModuloAssign             // %=
	ExponentialAssign        // **=
	LeftShiftAssign          // <<=
	RightShiftAssign         // >>=
	UnsignedRightShiftAssign // >>>=
	AndAssign                // &=
	XorAssign                // ^=
	OrAssign                 // |=

	// ── Keywords ────────────────────────────────────────────────────────────

	Const
	Let
	Import
	Export
	From
	Default
	True
	False

	reservedEnd
)

type reservedInfo struct {
	text string
	name string
}

var reserved = [...]reservedInfo{
	Assign:             {"=", "Assign"},
	LeftParenthesis:    {"(", "LeftParenthesis"},
	RightParenthesis:   {")", "RightParenthesis"},
	LeftCurly:          {"{", "LeftCurly"},
	RightCurly:         {"}", "RightCurly"},
	LeftSquareBracket:  {"[", "LeftSquareBracket"},
	RightSquareBracket: {"]", "RightSquareBracket"},
	Dot:                {".", "Dot"},
	Comma:              {",", "Comma"},
	SemiColon:          {";", "SemiColon"},
	Colon:              {":", "Colon"},
	Arrow:              {"=>", "Arrow"},

	Add:         {"+", "Add"},
	Sub:         {"-", "Sub"},
	Mult:        {"*", "Mult"},
	Div:         {"/", "Div"},
	Mod:         {"%", "Mod"},
	Exponential: {"**", "Exponential"},

	Less:        {"<", "Less"},
	Greater:     {">", "Greater"},
	LessOrEq:    {"<=", "LessOrEq"},
	GreaterOrEq: {">=", "GreaterOrEq"},
	Equal:       {"==", "Equal"},
	NotEqual:    {"!=", "NotEqual"},

	LeftShift:          {"<<", "LeftShift"},
	RightShift:         {">>", "RightShift"},
	UnsignedRightShift: {">>>", "UnsignedRightShift"},
	And:                {"&", "And"},
	Or:                 {"|", "Or"},
	Xor:                {"^", "Xor"},
	Not:                {"~", "Not"},
	LogicalNot:         {"!", "LogicalNot"},
	LogicalAnd:         {"&&", "LogicalAnd"},
	LogicalOr:          {"||", "LogicalOr"},

	AdditiveAssign:           {"+=", "AdditiveAssign"},
	SubtractiveAssign:        {"-=", "SubtractiveAssign"},
	MultiplicativeAssign:     {"*=", "MultiplicativeAssign"},
	DivisiveAssign:           {"/=", "DivisiveAssign"},
	ModuloAssign:             {"%=", "ModuloAssign"},
	ExponentialAssign:        {"**=", "ExponentialAssign"},
	LeftShiftAssign:          {"<<=", "LeftShiftAssign"},
	RightShiftAssign:         {">>=", "RightShiftAssign"},
	UnsignedRightShiftAssign: {">>>=", "UnsignedRightShiftAssign"},
	AndAssign:                {"&=", "AndAssign"},
	XorAssign:                {"^=", "XorAssign"},
	OrAssign:                 {"|=", "OrAssign"},

	Const:   {"const", "Const"},
	Let:     {"let", "Let"},
	Import:  {"import", "Import"},
	Export:  {"export", "Export"},
	From:    {"from", "From"},
	Default: {"default", "Default"},
	True:    {"true", "True"},
	False:   {"false", "False"},
}

// String returns the canonical source text of r, e.g. ">>>=" or "const".
func (r ReservedWord) String() string {
	if !r.valid() {
		return fmt.Sprintf("ReservedWord(%d)", int(r))
	}
	return reserved[r].text
}

// Name returns the identifier-style name of r, e.g. "UnsignedRightShiftAssign".
func (r ReservedWord) Name() string {
	if !r.valid() {
		return fmt.Sprintf("ReservedWord(%d)", int(r))
	}
	return reserved[r].name
}

// IsKeyword reports whether r is spelled with letters.
func (r ReservedWord) IsKeyword() bool {
	return r >= Const && r < reservedEnd
}

func (r ReservedWord) valid() bool {
	return r > 0 && r < reservedEnd
}

// Symbols lists every non-keyword reserved word, longest text first, so a
// scanner that takes the first prefix match gets the longest one.
var Symbols []ReservedWord

// keywords maps the literal text of every keyword to its ReservedWord.
var keywords = map[string]ReservedWord{}

func init() {
	for r := ReservedWord(1); r < reservedEnd; r++ {
		if r.IsKeyword() {
			keywords[r.String()] = r
			continue
		}
		Symbols = append(Symbols, r)
	}
	sort.SliceStable(Symbols, func(i, j int) bool {
		return len(Symbols[i].String()) > len(Symbols[j].String())
	})
}

// LookupKeyword checks whether word is a keyword.
func LookupKeyword(word string) (ReservedWord, bool) {
	r, ok := keywords[word]
	return r, ok
}

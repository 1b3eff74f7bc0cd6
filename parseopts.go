package quantities

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds settings shared by every level of a parse.
type parsectx struct {
	// wseof lists the whitespace runes that end the input.
	wseof string
	// ceof and seof are set when a comma or semicolon, respectively, may end
	// the top-level expression.
	ceof, seof bool
}

// stopopt is the option created by StopOn.
type stopopt parsectx

// StopOn ends the expression at any of the given runes, each of which must be
// a comma, a semicolon, or whitespace. This allows several expressions to be
// read in sequence from one source. Whitespace only stops the parse between
// complete terms, so "1 +\n2" is still one expression when stopping on
// newlines. Separators inside call arguments and vector literals keep their
// usual meaning.
//
// The last StopOn in a list of options wins. StopOn with no arguments restores
// the default of parsing to EOF.
func StopOn(chars ...rune) ParseOption {
	var o stopopt
	for _, r := range chars {
		switch {
		case r == ',':
			o.ceof = true
		case r == ';':
			o.seof = true
		case unicode.IsSpace(r):
			if !strings.ContainsRune(o.wseof, r) {
				o.wseof += string(r)
			}
		default:
			panic("quantities: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	return o
}

func (o stopopt) parseOption(parsectx) parsectx {
	return parsectx(o)
}

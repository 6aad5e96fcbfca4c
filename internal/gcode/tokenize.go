package gcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Tokenizer findings. The rewrite never consults these; lint reports them.
var (
	ErrComment              = errors.New("unbalanced comment parenthesis")
	ErrInvalidCode          = errors.New("code is not a letter")
	ErrInvalidValue         = errors.New("code value is not a number")
	ErrRepeatCode           = errors.New("code repeated on one line")
	ErrMultipleCommandCodes = errors.New("line mixes G and M codes")
)

// Code is one letter's parameter. A letter without a value is a flag.
type Code struct {
	Flag  bool
	Value float64
}

// Codes maps an upper-case code letter to its parameter.
type Codes map[byte]Code

// Has reports whether letter is present.
func (c Codes) Has(letter byte) bool {
	_, ok := c[letter]
	return ok
}

// ExtractComments splits line into its command part and its comment text.
// Everything after ';' is comment, as is anything inside parentheses.
func ExtractComments(line string) (command, comment string, err error) {
	head, tail, _ := strings.Cut(line, ";")
	var cmd, com strings.Builder
	com.WriteString(tail)

	depth := 0
	for _, r := range head {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth < 1 {
				return "", "", ErrComment
			}
			depth--
		case depth > 0:
			com.WriteRune(r)
		default:
			cmd.WriteRune(r)
		}
	}
	return cmd.String(), com.String(), nil
}

// ParseCommand reads whitespace separated letter/value pairs.
func ParseCommand(command string) (Codes, error) {
	codes := Codes{}
	for _, pair := range strings.Fields(command) {
		letter := pair[0]
		if 'a' <= letter && letter <= 'z' {
			letter -= 'a' - 'A'
		}
		if letter < 'A' || letter > 'Z' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCode, pair)
		}
		if codes.Has(letter) {
			return nil, fmt.Errorf("%w: %c", ErrRepeatCode, letter)
		}
		if (letter == 'G' && codes.Has('M')) || (letter == 'M' && codes.Has('G')) {
			return nil, ErrMultipleCommandCodes
		}
		if len(pair) == 1 {
			codes[letter] = Code{Flag: true}
			continue
		}
		v, err := strconv.ParseFloat(pair[1:], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, pair)
		}
		codes[letter] = Code{Value: v}
	}
	return codes, nil
}

// ParseLine tokenizes one line of gcode.
func ParseLine(line string) (Codes, string, error) {
	command, comment, err := ExtractComments(line)
	if err != nil {
		return nil, "", err
	}
	codes, err := ParseCommand(command)
	if err != nil {
		return nil, "", err
	}
	return codes, comment, nil
}

// LineError ties a tokenizer finding to a 1-based line number.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

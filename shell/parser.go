package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/memsim/model/process"
	"github.com/viant/parsly"
)

// ErrInvalidNumber is returned when user input is not an acceptable integer
var ErrInvalidNumber = errors.New("shell: invalid number")

// ParseInt parses a single integer surrounded by optional whitespace
func ParseInt(input string) (int, error) {
	cursor := parsly.NewCursor("", []byte(input), 0)
	matched := cursor.MatchAfterOptional(whitespaceToken, integerToken)
	if matched.Code != integerToken.Code {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	text := matched.Text(cursor)
	cursor.MatchOne(whitespaceToken)
	if cursor.Pos < cursor.InputSize {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidNumber, input, err)
	}
	return value, nil
}

// ParsePositive parses an integer > 0
func ParsePositive(input string) (int, error) {
	value, err := ParseInt(input)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: %d must be positive", ErrInvalidNumber, value)
	}
	return value, nil
}

// ParseNonNegative parses an integer >= 0
func ParseNonNegative(input string) (int, error) {
	value, err := ParseInt(input)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %d must not be negative", ErrInvalidNumber, value)
	}
	return value, nil
}

// ParseStates parses whitespace separated state names; blank input means all states
func ParseStates(input string) ([]process.State, error) {
	cursor := parsly.NewCursor("", []byte(input), 0)
	var states []process.State
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, wordToken)
		if matched.Code != wordToken.Code {
			break
		}
		name := strings.ToLower(matched.Text(cursor))
		state, ok := process.ParseState(name)
		if !ok {
			return nil, fmt.Errorf("unknown state: %v", name)
		}
		states = append(states, state)
	}
	return states, nil
}

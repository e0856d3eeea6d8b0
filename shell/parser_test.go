package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/memsim/model/process"
)

func TestParseInt(t *testing.T) {
	testCases := []struct {
		input     string
		expect    int
		expectErr bool
	}{
		{input: "600", expect: 600},
		{input: "  42 ", expect: 42},
		{input: "-3", expect: -3},
		{input: "+7", expect: 7},
		{input: "", expectErr: true},
		{input: "abc", expectErr: true},
		{input: "12abc", expectErr: true},
		{input: "1 2", expectErr: true},
		{input: "-", expectErr: true},
		{input: "99999999999999999999999", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			actual, err := ParseInt(tc.input)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestParseBounds(t *testing.T) {
	_, err := ParsePositive("0")
	assert.ErrorIs(t, err, ErrInvalidNumber)
	value, err := ParseNonNegative("0")
	assert.NoError(t, err)
	assert.Equal(t, 0, value)
	_, err = ParseNonNegative("-1")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestParseStates(t *testing.T) {
	states, err := ParseStates("")
	assert.NoError(t, err)
	assert.Empty(t, states)

	states, err = ParseStates(" running  WAITING ")
	assert.NoError(t, err)
	assert.Equal(t, []process.State{process.StateRunning, process.StateWaiting}, states)

	_, err = ParseStates("running sleeping")
	assert.Error(t, err)
}

package apierrors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfMatchesError(t *testing.T) {
	err := &Error{Code: CodeNotLeader, Status: 307, Location: "master2:5050"}
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, CodeNotLeader, code)
}

func TestCodeOfRejectsOtherErrors(t *testing.T) {
	_, ok := CodeOf(errPlain("boom"))
	require.False(t, ok)
}

func TestErrorStringIncludesLocation(t *testing.T) {
	err := &Error{Code: CodeNotLeader, Status: 307, Location: "master2:5050"}
	require.Contains(t, err.Error(), "master2:5050")
}

type errPlain string

func (e errPlain) Error() string { return string(e) }

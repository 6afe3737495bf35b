package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LevelFollowsVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden request")
	assert.Empty(t, buf.String())

	New(&buf, true).Debug("visible request", "rule", "valid_coordinates")
	assert.Contains(t, buf.String(), "visible request")
	assert.Contains(t, buf.String(), "rule=valid_coordinates")
}

func TestNew_NoColorForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Warn("loose comparison")
	assert.False(t, strings.Contains(buf.String(), "\x1b["), "unexpected ANSI escape in %q", buf.String())
}

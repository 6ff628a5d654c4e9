package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_DrawsFramesAndClears(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Generating")
	time.Sleep(3 * SpinnerStyle.FPS)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, SpinnerStyle.Frames[0])
	assert.Contains(t, out, "Generating")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"), "line is cleared on stop")
}

package logutils

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure_LevelAndJSON(t *testing.T) {
	prevLevel, prevFormatter, prevOut := Log.GetLevel(), Log.Formatter, Log.Out
	t.Cleanup(func() {
		Log.SetLevel(prevLevel)
		Log.SetFormatter(prevFormatter)
		Log.SetOutput(prevOut)
	})

	var buf bytes.Buffer
	Log.SetOutput(&buf)
	Configure("debug", "json")

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	Log.WithField("scenario_id", 4).Debug("cloned")
	assert.Contains(t, buf.String(), `"scenario_id":4`)
	assert.Contains(t, buf.String(), `"msg":"cloned"`)
}

func TestConfigure_UnknownLevelIgnored(t *testing.T) {
	prev := Log.GetLevel()
	t.Cleanup(func() { Log.SetLevel(prev) })

	Log.SetLevel(logrus.InfoLevel)
	Configure("loud", "text")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	_, ok := Log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

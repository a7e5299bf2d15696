package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.TraceLevel, New("trace").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud").GetLevel())
}

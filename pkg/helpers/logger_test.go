package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "hrms", "production")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	LogError(l, "boom", errors.New("db down"), logrus.Fields{"path": "/api/auth/login"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["msg"])
	assert.Equal(t, "db down", line["error"])
	assert.Equal(t, "/api/auth/login", line["path"])
	assert.Equal(t, "hrms", line["app"])
	assert.Equal(t, "production", line["env"])
}

func TestNewLogger_DevelopmentIsDebug(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, "hrms", "development")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestLogError_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { LogError(nil, "ignored", errors.New("x"), nil) })
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"ecclesia-backend/internal/auth"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", &buf)
	t.Cleanup(func() { Setup("info", nil) })

	decode := func() map[string]interface{} {
		t.Helper()
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		buf.Reset()
		return entry
	}

	t.Run("anonymous", func(t *testing.T) {
		WithContext(context.Background()).Info("hello")
		entry := decode()
		assert.Equal(t, "unknown", entry["user"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("principal with email", func(t *testing.T) {
		p := &auth.Principal{ID: uuid.New(), Email: "pastor@vidanova.org"}
		ctx := auth.WithPrincipal(context.Background(), p)
		ctx = context.WithValue(ctx, RequestIDKey, "req-1")

		WithContext(ctx).WithField("attempt", 2).Warn("retrying")
		entry := decode()
		assert.Equal(t, "pastor@vidanova.org", entry["user"])
		assert.Equal(t, p.ID.String(), entry["principal_id"])
		assert.Equal(t, "req-1", entry["request_id"])
		assert.EqualValues(t, 2, entry["attempt"])
	})

	t.Run("principal without email", func(t *testing.T) {
		p := &auth.Principal{ID: uuid.New()}
		WithContext(auth.WithPrincipal(context.Background(), p)).Debug("probe")
		entry := decode()
		assert.Equal(t, p.ID.String(), entry["user"])
	})
}

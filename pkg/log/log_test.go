package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	t.Cleanup(func() { logrus.SetOutput(previous) })

	return buf
}

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background(), "")

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))

	incoming := "6f1c2b7e-3d4a-4e8f-9a1b-2c3d4e5f6a7b"
	_, reused := WithCorrelationID(context.Background(), incoming)
	assert.Equal(t, incoming, reused)

	_, replaced := WithCorrelationID(context.Background(), "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", replaced)
}

func TestForContext(t *testing.T) {
	buf := captureOutput(t)
	ctx := context.WithValue(context.Background(), CorrelationIDKey, "abc-123")

	ForContext(ctx).Info("mensagem")

	assert.Contains(t, buf.String(), "correlation_id=abc-123")
}

func TestWithFields_Development(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureOutput(t)

	L.WithFields(Fields{"operation": "fetch_latest", "table": "targeting_intel"}).Info("leitura")

	assert.Contains(t, buf.String(), "operation=fetch_latest")
	assert.NotContains(t, buf.String(), "table=")
}

func TestWithFields_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	L.WithFields(Fields{"operation": "fetch_latest", "table": "targeting_intel"}).Info("leitura")

	assert.Contains(t, buf.String(), "table=targeting_intel")
}

package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*SecurityLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewSecurityLogger(zap.New(core), "jobportal-api", "test"), logs
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("john@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("j@example.com"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail(""))
}

func TestSecurityLoggerLevels(t *testing.T) {
	sl, logs := observedLogger()
	ctx := context.Background()

	sl.LogLoginSuccess(ctx, "user-1", "10.0.0.1", "curl", "req-1")
	sl.LogLoginFailed(ctx, "bob@example.com", "10.0.0.1", "curl", "req-2", "invalid_credentials")
	sl.LogLoginBlocked(ctx, "bob@example.com", "10.0.0.1", "curl", "req-3")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[1].ContextMap()
	assert.Equal(t, "b***@example.com", fields["subject_value"])
	assert.Equal(t, "login_failed", fields["event"])
	assert.Equal(t, "WARN", fields["severity"])
	assert.NotContains(t, entries[0].ContextMap()["subject_value"], "user-1")
}

func TestLoginTrackerFailsOpenWithoutRedis(t *testing.T) {
	sl, logs := observedLogger()
	lt := NewLoginTracker(DefaultLoginTrackerConfig(), sl)
	ctx := context.Background()

	blocked, err := lt.IsBlocked(ctx, "bob@example.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	for i := 0; i < 10; i++ {
		require.NoError(t, lt.RecordFailure(ctx, "bob@example.com", "10.0.0.1", "curl", "req-1"))
	}
	blocked, err = lt.IsBlocked(ctx, "bob@example.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	assert.NoError(t, lt.Clear(ctx, "bob@example.com", "10.0.0.1"))
	// failures are still reported to the security log
	assert.Equal(t, 10, logs.FilterMessage(string(EventLoginFailed)).Len())
}

func TestGetSeverity(t *testing.T) {
	assert.Equal(t, SeverityINFO, GetSeverity(EventLoginSuccess))
	assert.Equal(t, SeverityHIGH, GetSeverity(EventLoginBlocked))
	assert.Equal(t, SeverityWARN, GetSeverity(EventForbiddenAccess))
	assert.Equal(t, SeverityMEDIUM, GetSeverity(EventType("something_new")))
}

func TestServedContentType(t *testing.T) {
	ct, inline := ServedContentType("abc_cv.pdf", []byte("%PDF-1.4 body"))
	assert.Equal(t, "application/pdf", ct)
	assert.True(t, inline)

	// extension lies about the content
	ct, inline = ServedContentType("abc_cv.pdf", []byte("<html><script>"))
	assert.Equal(t, "application/pdf", ct)
	assert.False(t, inline)

	_, inline = ServedContentType("logo.png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0})
	assert.True(t, inline)

	_, inline = ServedContentType("logo.svg", []byte("<svg"))
	assert.False(t, inline)

	ct, inline = ServedContentType("noext", []byte("data"))
	assert.Equal(t, "application/octet-stream", ct)
	assert.False(t, inline)
}

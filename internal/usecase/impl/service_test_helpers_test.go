package impl

import (
	"io"
	"log/slog"
	"testing"

	domainerrors "pharmalink/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a logger that swallows everything. Services log on
// best-effort paths and the tests only care about the returned values.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// assertErrorCode unwraps err into an AppError and checks its business code.
// Validation errors carry per-call details and are fresh instances, so
// errors.Is against the sentinel does not apply to them.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = stderrors.New("sentinel")

func TestWrap_KeepsCodeFromChain(t *testing.T) {
	base := InvalidInput("bad sample", errSentinel)
	wrapped := Wrap(fmt.Errorf("reading column: %w", base), "describe failed")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, errSentinel))
	assert.Equal(t, "describe failed: reading column: bad sample: sentinel", wrapped.Error())
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrapf(errSentinel, "step %d", 2)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, errSentinel)
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.True(t, stderrors.Is(err, errSentinel))

	recoded := WithCode(CodeDatabaseError, DatabaseError("query", errSentinel))
	assert.Equal(t, CodeDatabaseError, GetCode(recoded))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *AppError
		code string
		msg  string
	}{
		{ConfigInvalid("PORT must be numeric"), CodeConfigInvalid, "PORT must be numeric"},
		{NotFound("report", nil), CodeNotFound, "report not found"},
		{RenderingFailed("ecdf", errSentinel), CodeRenderingFailed, "failed to render ecdf chart: sentinel"},
		{InternalError("boom"), CodeInternalError, "boom"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.Equal(t, tt.msg, tt.err.Error())
	}
	assert.Equal(t, "UNKNOWN", GetCode(errSentinel))
}

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("join: %w", ErrCapacityFull)
	assert.ErrorIs(t, wrapped, ErrCapacityFull)
	assert.NotErrorIs(t, wrapped, ErrMeetingClosed)

	// Same code and message compare equal even when built separately.
	assert.ErrorIs(t, New(CodeCapacityFull, "정원마감"), ErrCapacityFull)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeNotFound, CodeOf(pkgerrors.Wrap(ErrMeetingNotFound, "repo.Get")))
	assert.True(t, HasCode(ErrNotHost, CodePermissionDenied))
}

func TestStoreFailedKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := ErrStoreFailed(pkgerrors.Wrap(cause, "meetingRepo.Get"))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeInvalidArgument:    http.StatusBadRequest,
		CodeNotFound:           http.StatusNotFound,
		CodeCapacityFull:       http.StatusConflict,
		CodeMeetingClosed:      http.StatusConflict,
		CodePermissionDenied:   http.StatusForbidden,
		CodeUnauthenticated:    http.StatusUnauthorized,
		CodeFailedPrecondition: http.StatusUnprocessableEntity,
		CodeRateLimited:        http.StatusTooManyRequests,
		CodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, code.HTTPStatus(), code)
	}
}

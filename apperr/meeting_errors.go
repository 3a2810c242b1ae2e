package apperr

var (
	// Meeting and membership errors
	ErrMeetingNotFound     = NotFound("meeting not found")
	ErrParticipantNotFound = NotFound("participant not found")
	ErrNotHost             = Forbidden("only the host can do this")
	ErrCapacityFull        = New(CodeCapacityFull, "정원마감")
	ErrMeetingClosed       = New(CodeMeetingClosed, "meeting is closed")
	ErrHostCannotJoin      = FailedPrecondition("host cannot join their own meeting")
	ErrHostCannotLeave     = FailedPrecondition("host cannot leave their own meeting; cancel it instead")
	ErrJoinRejected        = FailedPrecondition("join request was rejected by the host")
	ErrNotPending          = FailedPrecondition("participant is not awaiting a decision")
	ErrCapacityInvariant   = FailedPrecondition("capacity.current must not exceed capacity.total")
	ErrVersionConflict     = New(CodeConflict, "meeting was modified concurrently")
	ErrInvalidMeetingID    = InvalidArg("invalid meeting id")
)

func ErrStoreFailed(cause error) error {
	return Wrap(CodeInternal, "meeting store failure", cause)
}

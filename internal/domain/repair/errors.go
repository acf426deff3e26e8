package repair

import "errors"

var (
	ErrUnknownSchoolLocation = errors.New("school has no helpdesk location mapping")
	ErrSubmissionFailed      = errors.New("repair ticket submission failed")
)

package upstream

import "stamp-rally/internal/pkg/errs"

// Classify marks err with the usecase sentinel for its kind and attaches the authority's detail
// as the user-facing message. rejected is used for 4xx responses other than 401 and 404.
func Classify(err error, rejected error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch {
	case IsKind(err, KindAuthExpired):
		sentinel = errs.ErrAuthExpired
	case IsKind(err, KindNotFound):
		sentinel = errs.ErrNotFound
	case IsKind(err, KindBadRequest):
		sentinel = rejected
		if sentinel == nil {
			sentinel = errs.ErrInvalidInput
		}
	default:
		sentinel = errs.ErrRemoteUnavailable
	}

	return errs.WithUserMessage(errs.Mark(err, sentinel), DetailOf(err))
}

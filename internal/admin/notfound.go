package admin

// NotFoundError carries the user-facing message for a missing record so
// callers can map it to a 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

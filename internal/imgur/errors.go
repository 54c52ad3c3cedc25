package imgur

// AuthError reports a failed PIN or refresh exchange, or the absence of any
// credentials to exchange. It is fatal: the caller surfaces it and exits.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "authorization failed: " + e.Reason
}

// ErrNoCredentials is returned when a refresh is requested but no refresh
// token exists in the store. The user has to run the PIN flow again.
var ErrNoCredentials = &AuthError{Reason: "no credentials"}

// APIError reports a non-success envelope from an authenticated call after
// the retry budget is exhausted.
type APIError struct {
	Op      string // the failed operation, e.g. "image upload"
	Message string // data.error from the envelope
}

func (e *APIError) Error() string {
	return "error in " + e.Op + ": " + e.Message
}

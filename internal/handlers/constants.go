package handlers

const (
	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"

	// SignInFailedMessage is the only thing the login page says about a
	// failed attempt, whatever actually went wrong.
	SignInFailedMessage = "Could not sign you in."
)

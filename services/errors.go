package services

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("record already exists")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAlreadyCompletedToday = errors.New("habit already completed today")
	ErrAIUnavailable         = errors.New("AI assistant is not configured: missing API key")
	ErrAIRequest             = errors.New("AI request failed")
	ErrStorage               = errors.New("file storage failed")
	ErrCaptchaRejected       = errors.New("reCAPTCHA verification failed")
	ErrEmail                 = errors.New("email delivery failed")
	ErrMissingSecret         = errors.New("token secret is not configured")
)

package service

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"notehub/internal/repository"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrReaderNil           = errors.New("reader is nil")
	ErrForbidden           = errors.New("you can only delete your own notes")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnsupportedFileType = errors.New("invalid file type: only PDF, DOC, DOCX, PPT, PPTX, and images are allowed")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrFileMissing         = errors.New("file not found")
	ErrEmailTaken          = errors.New("user already exists with this email")

	ErrEmailInvalid       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordRequired   = errors.New("password is required")
	ErrFirstNameRequired  = errors.New("first name is required")
	ErrLastNameRequired   = errors.New("last name is required")
	ErrUniversityRequired = errors.New("university is required")
)

// invalid marks err as a client input problem so callers can match repository.ErrInvalidInput.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", repository.ErrInvalidInput, err)
}

var tracer = otel.Tracer("notehub/internal/service")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

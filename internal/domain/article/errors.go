package article

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalid  = errors.New("invalid article")
	ErrNotFound = errors.New("article not found")
	ErrNetwork  = errors.New("network error")
	ErrUpload   = errors.New("upload failed")
)

// ValidationError reports input rejected on the client or by the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// NotFoundError reports a missing article.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("article %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NetworkError reports a transport failure or an unexpected response.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// UploadError reports a failed image upload.
type UploadError struct {
	Status          int
	EndpointMissing bool
	Message         string
	Err             error
}

func (e *UploadError) Error() string {
	switch {
	case e.EndpointMissing:
		return "upload endpoint not found"
	case e.Message != "":
		return "upload failed: " + e.Message
	case e.Err != nil:
		return fmt.Sprintf("upload failed: %v", e.Err)
	default:
		return fmt.Sprintf("upload failed: status %d", e.Status)
	}
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool { return target == ErrUpload }

// UserMessage renders an error as a sentence suitable for an alert dialog.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		validation *ValidationError
		notFound   *NotFoundError
		upload     *UploadError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &notFound):
		return "Failed to load article."
	case errors.As(err, &upload):
		if upload.EndpointMissing {
			return "Upload failed: Server endpoint not found. Please check your server configuration."
		}
		if upload.Message != "" {
			return "Upload failed: " + upload.Message
		}
		return "Upload failed. Please try again."
	case errors.Is(err, ErrNetwork):
		return "Network error. Please check that the server is running and try again."
	default:
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			return "Something went wrong."
		}
		return msg
	}
}

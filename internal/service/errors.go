package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrValidationFailed = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")

	ErrNoImageProvided   = errors.New("no image provided")
	ErrFileTooLarge      = errors.New("file exceeds the maximum allowed size")
	ErrInvalidFileType   = errors.New("file type is not allowed")
	ErrInvalidBase64Data = errors.New("invalid base64 image data")
	ErrBatchTooLarge     = errors.New("too many images in one batch")
	ErrInvalidStage      = errors.New("invalid stage value")
	ErrNothingToUpdate   = errors.New("no fields to update")
)

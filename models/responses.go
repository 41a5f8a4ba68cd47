package models

// ErrorResponse is the JSON body of every error reply: a human-readable
// message plus, for validation failures, a field-keyed map of error strings.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// RegisterResponse is the body returned on successful registration.
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse carries the issued token and a trimmed user view.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// LoginUser is the user projection embedded in a login response.
type LoginUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VerifyEmailPasswordResponse is the body of a successful credential check.
type VerifyEmailPasswordResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"user_id"`
}

// VerifyTokenResponse is the body of a successful token verification.
type VerifyTokenResponse struct {
	Valid  bool  `json:"valid"`
	UserID int64 `json:"user_id"`
}

// StageChoicesResponse is the body of GET /classifications/choices.
type StageChoicesResponse struct {
	Choices []StageChoice `json:"choices"`
}

// SingleUploadResponse is the body of a single-image upload reply.
// Duplicate is true when the content already existed and the stored record
// is returned unchanged.
type SingleUploadResponse struct {
	Image     Image `json:"image"`
	Duplicate bool  `json:"duplicate"`
}

// BatchUploadResponse is the body of a batch upload reply. Every submitted
// item appears in Uploaded with its individual outcome.
type BatchUploadResponse struct {
	UploadBatchID string         `json:"upload_batch_id"`
	Uploaded      []UploadResult `json:"uploaded"`
	TotalUploaded int            `json:"total_uploaded"`
}

// UploadWithStageResponse extends the batch shape with the classifications
// created for every successfully ingested image.
type UploadWithStageResponse struct {
	UploadBatchID string           `json:"upload_batch_id"`
	Uploaded      []UploadResult   `json:"uploaded"`
	Stage         string           `json:"stage"`
	Classified    []Classification `json:"classified"`
}

// ImageListResponse is the body of an image listing reply.
type ImageListResponse struct {
	Images     []Image `json:"images"`
	TotalCount int64   `json:"total_count"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}

// Pagination describes the page window of a classification listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ClassificationListResponse is the body of a classification listing reply.
type ClassificationListResponse struct {
	Classifications []Classification `json:"classifications"`
	Pagination      Pagination       `json:"pagination"`
}

// UserListResponse is the body of the admin user roster reply.
type UserListResponse struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
}

package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Coren       string `json:"coren,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// LoginRequest is the body of POST /auth/login and
// POST /auth/verify-email-password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateClassificationRequest is the body of POST /classifications/create.
type CreateClassificationRequest struct {
	ImageID      int64  `json:"image_id"`
	Stage        string `json:"stage"`
	Observations string `json:"observations,omitempty"`
}

// UpdateClassificationRequest is the body of
// PUT /classifications/{classificationID}. Nil fields are left unchanged.
type UpdateClassificationRequest struct {
	Stage        *string `json:"stage,omitempty"`
	Observations *string `json:"observations,omitempty"`
}

// Base64BatchRequest is the body of POST /images/upload/base64/batch.
type Base64BatchRequest struct {
	Images []UploadPayload `json:"images"`
}

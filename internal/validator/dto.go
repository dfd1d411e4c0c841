package validator

// LoginRequest carries the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a new account. The role is assigned server-side.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// ForgotPasswordRequest starts the recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest checks the emailed code.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,otp"`
}

// ResetPasswordRequest finishes the recovery flow.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,otp"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// NoticeAttachment references a file already uploaded to the external media
// service.
type NoticeAttachment struct {
	URL      string `json:"url" validate:"required,url"`
	PublicID string `json:"public_id" validate:"required"`
}

// NoticeCreateRequest creates an announcement.
type NoticeCreateRequest struct {
	Title       string             `json:"title" validate:"required,min=1,max=200"`
	Body        string             `json:"body" validate:"required,min=1"`
	Audience    string             `json:"audience" validate:"omitempty,oneof=all students staff"`
	Pinned      bool               `json:"pinned"`
	Attachments []NoticeAttachment `json:"attachments" validate:"omitempty,dive"`
}

// NoticeUpdateRequest patches an announcement.
type NoticeUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	Body     *string `json:"body" validate:"omitempty,min=1"`
	Audience *string `json:"audience" validate:"omitempty,oneof=all students staff"`
	Pinned   *bool   `json:"pinned"`
}

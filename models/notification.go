package models

// WelcomeEmailPayload is the payload of the fire-and-forget welcome email
// task.
type WelcomeEmailPayload struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

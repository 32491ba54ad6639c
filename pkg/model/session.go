package model

// Session is the locally cached identity of a signed-in user. The admin flag
// and created_at come from the user row at login/signup time and are never
// touched by profile updates.
type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

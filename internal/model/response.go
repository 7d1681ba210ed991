package model

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LogoutResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request except auth-gate
// rejections, which use AuthMessage.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthMessage is the rejection body written by the auth middleware.
type AuthMessage struct {
	Message string `json:"message"`
}

type UserListResponse struct {
	Users []User `json:"users"`
	Count int    `json:"count"`
}

type DeleteUserResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

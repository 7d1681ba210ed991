package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Firstname string `json:"firstname"`
	Fullname  string `json:"fullname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Status    string `json:"status"`
}

// UpdateUserRequest carries partial updates; empty fields are left unchanged.
type UpdateUserRequest struct {
	Firstname string `json:"firstname"`
	Fullname  string `json:"fullname"`
	Lastname  string `json:"lastname"`
	Password  string `json:"password"`
	Status    string `json:"status"`
}

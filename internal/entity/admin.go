package entity

type AdminLoginData struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

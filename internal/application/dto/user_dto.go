package dto

// UserResponse identidad del usuario autenticado (tomada de los claims del token).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

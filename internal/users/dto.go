package users

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=40"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest carries a partial update. A supplied password is rehashed.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

// ListUsersRequest paginates user listings.
type ListUsersRequest struct {
	Limit  int
	Offset int
}

package api

// CreateUserRequest is the body of POST /api/v1/user/create-user.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateRoleRequest is the body of PUT /api/v1/user/update-role/{id}.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateStatusRequest is the body of PUT /api/v1/user/update-status/{id}.
// Suspending a user clears the active flag.
type UpdateStatusRequest struct {
	IsSuspended bool `json:"isSuspended"`
}

// UpdateProfileRequest is the body of PUT /api/v1/user/update-profile.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	ProfilePhoto string `json:"profilePhoto"`
}

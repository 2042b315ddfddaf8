package schemas

type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"max=50"`
	ARNNumber int64  `json:"arn_number" validate:"required,gt=0"`
}

// AuditPayload is the signup request as recorded in the request log, with
// the password left out.
func (r SignupRequest) AuditPayload() map[string]interface{} {
	return map[string]interface{}{
		"email":      r.Email,
		"first_name": r.FirstName,
		"last_name":  r.LastName,
		"arn_number": r.ARNNumber,
	}
}

type UserResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ARNNumber int64  `json:"arn_number"`
}

type UsersResponse struct {
	Success []UserResponse `json:"success"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package dto

type CreateUserDTO struct {
	FirstName string `json:"firstName" validate:"required,person_name,max=100"`
	LastName  string `json:"lastName" validate:"required,person_name,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"omitempty,e164"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

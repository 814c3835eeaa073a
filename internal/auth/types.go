package auth

// RegisterCustomerInput carries a customer registration form.
type RegisterCustomerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterMechanicInput carries a mechanic registration form.
type RegisterMechanicInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Salary   float64 `json:"salary"`
	Password string  `json:"password"`
}

// ProfileUpdateInput carries the editable profile fields; nil leaves a
// field unchanged.
type ProfileUpdateInput struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

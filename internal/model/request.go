package model

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type UserCreateRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	BirthDate *Date   `json:"birthDate"`
	Photo     *string `json:"photo"`
}

// UserUpdateRequest covers both PUT and PATCH on the profile; PUT requires
// email, which the user service checks when the update is not partial.
type UserUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	BirthDate *Date   `json:"birthDate"`
	Photo     *string `json:"photo"`
}

type PasswordUpdateRequest struct {
	Password string `json:"password" validate:"required"`
}

type BookCreateRequest struct {
	Title     string   `json:"title" validate:"required"`
	Author    *string  `json:"author"`
	Cover     Cover    `json:"cover" validate:"required,oneof=HARD SOFT"`
	Inventory *int     `json:"inventory" validate:"omitempty,gte=0"`
	DailyFee  *float64 `json:"dailyFee" validate:"omitempty,gte=0"`
}

type BookPatchRequest struct {
	Title     *string  `json:"title"`
	Author    *string  `json:"author"`
	Cover     *Cover   `json:"cover" validate:"omitempty,oneof=HARD SOFT"`
	Inventory *int     `json:"inventory" validate:"omitempty,gte=0"`
	DailyFee  *float64 `json:"dailyFee" validate:"omitempty,gte=0"`
}

package model

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessToken struct {
	Access string `json:"access"`
}

// UserResponse is the projection returned by registration and profile updates.
type UserResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	BirthDate *Date   `json:"birthDate"`
	Photo     *string `json:"photo"`
}

// UserProfile is the self-profile projection (GET /users/me).
type UserProfile struct {
	UserResponse
	IsStaff  bool   `json:"isStaff"`
	FullName string `json:"fullName"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate,
		Photo:     u.Photo,
	}
}

func NewUserProfile(u User) UserProfile {
	return UserProfile{
		UserResponse: NewUserResponse(u),
		IsStaff:      u.IsStaff,
		FullName:     u.FullName(),
	}
}

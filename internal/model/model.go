package model

type User struct {
	ID           int64   `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	Username     *string `json:"username" db:"username"`
	FirstName    *string `json:"firstName" db:"first_name"`
	LastName     *string `json:"lastName" db:"last_name"`
	PasswordHash string  `json:"-" db:"password_hash"`
	IsStaff      bool    `json:"isStaff" db:"is_staff"`
	IsSuperuser  bool    `json:"isSuperuser" db:"is_superuser"`
	BirthDate    *Date   `json:"birthDate" db:"birth_date"`
	Photo        *string `json:"photo" db:"photo"`
}

// FullName is first+last when both are set, else username, else email.
func (u User) FullName() string {
	if u.FirstName != nil && *u.FirstName != "" && u.LastName != nil && *u.LastName != "" {
		return *u.FirstName + " " + *u.LastName
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}

type Cover string

const (
	CoverHard Cover = "HARD"
	CoverSoft Cover = "SOFT"
)

type Book struct {
	ID        int64   `json:"id" db:"id"`
	Title     string  `json:"title" db:"title"`
	Author    *string `json:"author" db:"author"`
	Cover     Cover   `json:"cover" db:"cover"`
	Inventory int     `json:"inventory" db:"inventory"`
	DailyFee  float64 `json:"dailyFee" db:"daily_fee"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type BookListItem struct {
	ID    int64  `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []BookListItem `json:"items"`
}

package model

type UserCreate struct {
	FullName string
	Email    string
	Photo    string
	TimeZone string
}

type User struct {
	ID int64
	UserCreate
}

// Credentials are the stored Google tokens obtained from the calendar
// consent flow. The access token may be expired; the refresh token is
// what keeps sync working.
type Credentials struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
}

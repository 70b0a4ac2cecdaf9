package models

import "strconv"

// RegisterRequest is the payload of POST /users/. Empty optional fields are
// left out of the JSON body.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Gender    string `json:"gender,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Favorites string `json:"favorites,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	AboutMe   string `json:"about_me,omitempty"`
}

// UpdateProfileRequest is the payload of PUT /users/{id}/. Every field is
// sent, so an empty value clears it on the server.
type UpdateProfileRequest struct {
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
	Birthdate string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Favorites string `json:"favorites"`
	Nickname  string `json:"nickname"`
	AboutMe   string `json:"about_me"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is what POST /auth/login returns.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
}

// User builds the session user from a login response. The login endpoint
// does not return the email or the optional fields, so they stay empty.
func (r *LoginResponse) User() *User {
	return &User{
		ID:       ID(strconv.FormatInt(r.UserID, 10)),
		Username: r.Username,
	}
}

// RegistrationStep1 holds the account part of the registration form.
type RegistrationStep1 struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email,excludesall=!#$%&*/=?^{}~0x7C"`
	Password string `json:"-"`
}

// RegistrationStep2 holds the optional profile part of the registration form.
type RegistrationStep2 struct {
	Gender    string `validate:"omitempty,oneof=male female other"`
	Birthdate string `validate:"omitempty,datetime=2006-01-02"`
	Favorites []string
	Nickname  string
	AboutMe   string
}

// NewRegisterRequest merges both form steps into the API payload.
func NewRegisterRequest(s1 RegistrationStep1, s2 RegistrationStep2) RegisterRequest {
	return RegisterRequest{
		Username:  s1.Username,
		Email:     s1.Email,
		Password:  s1.Password,
		Gender:    s2.Gender,
		Birthdate: s2.Birthdate,
		Favorites: JoinFavorites(s2.Favorites),
		Nickname:  s2.Nickname,
		AboutMe:   s2.AboutMe,
	}
}

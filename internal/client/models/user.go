package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a user. The API sends numeric ids; the client keeps them as
// strings, so ID decodes from either a JSON number or a JSON string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid user id %s: %w", string(b), err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("invalid user id %s: %w", string(b), err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// User is the profile of an account as held by the client. Only ID,
// Username and Email are always present; the rest is optional.
type User struct {
	ID        ID     `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Gender    string `json:"gender,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Favorites string `json:"favorites,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	AboutMe   string `json:"about_me,omitempty"`
}

// Field is a labelled profile value, used for display.
type Field struct {
	Label string
	Value string
}

// OptionalFields lists the optional profile fields that are set, in display
// order.
func (u *User) OptionalFields() []Field {
	all := []Field{
		{Label: "Gender", Value: u.Gender},
		{Label: "Birthdate", Value: u.Birthdate},
		{Label: "Favorites", Value: u.Favorites},
		{Label: "Nickname", Value: u.Nickname},
		{Label: "About Me", Value: u.AboutMe},
	}
	set := make([]Field, 0, len(all))
	for _, f := range all {
		if f.Value != "" {
			set = append(set, f)
		}
	}
	return set
}

// Profile returns the editable part of the user, used to prefill the edit
// form.
func (u *User) Profile() UpdateProfileRequest {
	return UpdateProfileRequest{
		Gender:    u.Gender,
		Birthdate: u.Birthdate,
		Favorites: u.Favorites,
		Nickname:  u.Nickname,
		AboutMe:   u.AboutMe,
	}
}

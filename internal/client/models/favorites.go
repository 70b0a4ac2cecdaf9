package models

import (
	"strconv"
	"strings"
)

// FavoritesCatalogue is the fixed set of favorites offered at registration.
var FavoritesCatalogue = []string{"Football", "Music", "Running"}

// Genders are the accepted values of the gender field, as listed in the
// oneof rules of the profile forms.
var Genders = []string{"male", "female", "other"}

// JoinFavorites renders the selection the way the API stores it. An empty
// selection yields "" so the field is omitted.
func JoinFavorites(selected []string) string {
	return strings.Join(selected, ", ")
}

// ToggleFavorite adds name to selected, or removes it if already present.
// Selection order is preserved.
func ToggleFavorite(selected []string, name string) []string {
	for i, s := range selected {
		if s == name {
			out := make([]string, 0, len(selected)-1)
			out = append(out, selected[:i]...)
			return append(out, selected[i+1:]...)
		}
	}
	return append(selected, name)
}

// LookupFavorite resolves user input (a catalogue name in any case, or its
// 1-based position) to the catalogue entry.
func LookupFavorite(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(FavoritesCatalogue) {
			return FavoritesCatalogue[n-1], true
		}
		return "", false
	}
	for _, f := range FavoritesCatalogue {
		if strings.EqualFold(f, input) {
			return f, true
		}
	}
	return "", false
}

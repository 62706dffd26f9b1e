package facility

import "strings"

// Facility is the normalized shape of one nearby-search result. Fields the
// upstream omits stay nil rather than failing the lookup.
type Facility struct {
	Name             *string  `json:"name"`
	Address          *string  `json:"address"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	OpenNow          *bool    `json:"open_now"`
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	PlaceID          *string  `json:"place_id"`
}

// categories maps the public facility type keys onto Places categories.
// "clinic" approximates to the doctor category; emergency rooms are
// hospitals narrowed by a keyword.
var categories = map[string]string{
	"hospital":  "hospital",
	"pharmacy":  "pharmacy",
	"clinic":    "doctor",
	"lab":       "laboratory",
	"emergency": "hospital",
}

// Resolve maps a facility type key to the upstream category and optional
// keyword. Unknown keys fall back to the hospital category.
func Resolve(typeKey string) (category, keyword string) {
	key := strings.ToLower(strings.TrimSpace(typeKey))
	category, ok := categories[key]
	if !ok {
		category = "hospital"
	}
	if key == "emergency" {
		keyword = "emergency"
	}
	return category, keyword
}

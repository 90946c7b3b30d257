package viz

import "strings"

// Category is the semantic group a body channel belongs to.
type Category string

const (
	CategoryWaist Category = "waist"
	CategoryMove  Category = "move"
	CategoryLift  Category = "lift"
	CategoryOther Category = "other"
)

// Categorize maps a body channel key to its category by case-insensitive
// substring match. Priority when several substrings match: waist, then
// move, then lift/height. Only the key name matters, never the value.
func Categorize(key string) Category {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "waist"):
		return CategoryWaist
	case strings.Contains(k, "move"):
		return CategoryMove
	case strings.Contains(k, "lift"), strings.Contains(k, "height"):
		return CategoryLift
	default:
		return CategoryOther
	}
}

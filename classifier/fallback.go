package classifier

import (
	"strings"

	"servedc-be/models"
)

// Keyword sets are checked in this order; the first hit wins. Safety signals
// outrank everything else, so text containing both "danger" and "free"
// resolves to Safety rather than Giveaway.
var keywordSets = []struct {
	category models.Category
	keywords []string
}{
	{models.Safety, []string{"safe", "police", "danger", "suspicious"}},
	{models.UrgentHelp, []string{"help", "urgent", "emergency", "stuck"}},
	{models.Giveaway, []string{"free", "giveaway", "donation", "canned"}},
	{models.SocialImpact, []string{"volunteer", "cleanup", "community", "impact"}},
}

// Classify maps announcement text to a category by case-insensitive keyword
// matching. It always returns a valid category; text matching nothing is
// General.
func Classify(text string) models.Category {
	lower := strings.ToLower(text)
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.category
			}
		}
	}
	return models.General
}

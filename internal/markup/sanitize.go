package markup

import "github.com/microcosm-cc/bluemonday"

// ugcPolicy allows the formatting markup typical of handbook explanations and
// drops scripts, event handlers and unsafe URLs.
var ugcPolicy = bluemonday.UGCPolicy()

// Sanitize removes unsafe elements and attributes from fragment.
func Sanitize(fragment string) string {
	return ugcPolicy.Sanitize(fragment)
}

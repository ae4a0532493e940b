package output

import "regexp"

// disallowedTag matches the opening of the tags the GFM tag filter neutralizes.
var disallowedTag = regexp.MustCompile(
	`(?i)<(/?(?:title|textarea|style|xmp|iframe|noembed|noframes|script|plaintext))([\t\n\f\r />]|$)`)

// filterTags escapes the leading '<' of disallowed raw HTML tags in a rendered fragment.
func filterTags(fragment string) string {
	return disallowedTag.ReplaceAllString(fragment, "&lt;$1$2")
}

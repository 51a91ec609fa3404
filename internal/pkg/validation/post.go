package validation

import "github.com/yigit/welearn/internal/app/models"

// PostFields holds the user supplied parts of a post. A nil field is
// absent from the request.
type PostFields struct {
	Title   *string
	Content *string
	Author  *string
}

// ValidatePost checks post fields. On create every field is required;
// on a partial update only the fields present are checked, and a present
// field may not be blank.
func ValidatePost(f PostFields, partial bool) error {
	var rules []*StringValidation

	add := func(name string, value *string, min, max int) {
		if value == nil {
			if !partial {
				rules = append(rules, NewStringValidation(name, ""))
			}
			return
		}
		rules = append(rules, NewStringValidation(name, *value).WithMinLength(min).WithMaxLength(max))
	}

	add("title", f.Title, models.PostTitleMin, models.PostTitleMax)
	add("content", f.Content, models.PostContentMin, models.PostContentMax)
	add("author", f.Author, models.PostAuthorMin, models.PostAuthorMax)

	return Collect(rules...).OrNil()
}

// Package sanitizer normalizes user supplied strings before validation.
//
// Functions can be called directly or applied to struct fields through the
// `sanitize` tag, whose value is a comma separated list of registered names
// run left to right:
//
//	type productInput struct {
//		Name  string `json:"name" sanitize:"no_control,strip_html,single_line"`
//		Image string `json:"image" sanitize:"trim"`
//	}
//
//	if err := sanitizer.SanitizeStruct(&in); err != nil {
//		return err
//	}
//
// Untagged string fields are left alone. Nested structs and pointers to
// structs are walked recursively; string slices are sanitized element-wise.
// Custom names can be added with RegisterSanitizer.
package sanitizer

package models

// Categories is the closed set of shelf categories for locally uploaded
// books. Externally sourced books carry whatever subject Open Library
// reports, so the enumeration is only enforced on our own catalog.
var Categories = []string{
	"Fiction",
	"Non-Fiction",
	"Science",
	"Technology",
	"History",
	"Biography",
	"Self-Help",
	"Business",
	"Romance",
	"Mystery",
	"Fantasy",
	"Science Fiction",
	"Poetry",
	"Children",
	"Young Adult",
	"Comics",
	"Other",
}

func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

package domain

// SearchCategory is one of the fixed style dimensions used to bucket
// retrieved excerpts.
type SearchCategory string

// The closed set of search categories.
const (
	CategoryErrorHandling      SearchCategory = "error_handling"
	CategoryNamingStyle        SearchCategory = "naming_style"
	CategoryComments           SearchCategory = "comments"
	CategoryTesting            SearchCategory = "testing"
	CategoryAsyncPatterns      SearchCategory = "async_patterns"
	CategoryValidation         SearchCategory = "validation"
	CategoryLogging            SearchCategory = "logging"
	CategoryConfiguration      SearchCategory = "configuration"
	CategoryClassStructure     SearchCategory = "class_structure"
	CategoryFunctionalPatterns SearchCategory = "functional_patterns"
)

// AllCategories returns every category in a stable order.
func AllCategories() []SearchCategory {
	return []SearchCategory{
		CategoryErrorHandling,
		CategoryNamingStyle,
		CategoryComments,
		CategoryTesting,
		CategoryAsyncPatterns,
		CategoryValidation,
		CategoryLogging,
		CategoryConfiguration,
		CategoryClassStructure,
		CategoryFunctionalPatterns,
	}
}

// Query returns the canonical natural-language query used to retrieve
// excerpts for this category.
func (c SearchCategory) Query() string {
	switch c {
	case CategoryErrorHandling:
		return "error handling try catch exception result unwrap"
	case CategoryNamingStyle:
		return "function variable naming conventions style camelCase snake_case"
	case CategoryComments:
		return "code comments documentation TODO FIXME notes explanations"
	case CategoryTesting:
		return "test unit test integration test mock assert expect"
	case CategoryAsyncPatterns:
		return "async await promise future concurrent parallel"
	case CategoryValidation:
		return "validation input checking sanitize validate parse"
	case CategoryLogging:
		return "logging debug print console log trace warn error"
	case CategoryConfiguration:
		return "config configuration environment setup settings"
	case CategoryClassStructure:
		return "class struct impl interface trait inheritance"
	case CategoryFunctionalPatterns:
		return "map filter reduce lambda closure higher order function"
	}
	return ""
}

// SearchResults holds the retrieved excerpts for every category. All ten
// categories are always present, possibly as empty lists.
type SearchResults struct {
	ErrorHandling      []CodeExcerpt `json:"error_handling"`
	NamingStyle        []CodeExcerpt `json:"naming_style"`
	Comments           []CodeExcerpt `json:"comments"`
	Testing            []CodeExcerpt `json:"testing"`
	AsyncPatterns      []CodeExcerpt `json:"async_patterns"`
	Validation         []CodeExcerpt `json:"validation"`
	Logging            []CodeExcerpt `json:"logging"`
	Configuration      []CodeExcerpt `json:"configuration"`
	ClassStructure     []CodeExcerpt `json:"class_structure"`
	FunctionalPatterns []CodeExcerpt `json:"functional_patterns"`
}

// Get returns the excerpts for a category.
func (r *SearchResults) Get(c SearchCategory) []CodeExcerpt {
	switch c {
	case CategoryErrorHandling:
		return r.ErrorHandling
	case CategoryNamingStyle:
		return r.NamingStyle
	case CategoryComments:
		return r.Comments
	case CategoryTesting:
		return r.Testing
	case CategoryAsyncPatterns:
		return r.AsyncPatterns
	case CategoryValidation:
		return r.Validation
	case CategoryLogging:
		return r.Logging
	case CategoryConfiguration:
		return r.Configuration
	case CategoryClassStructure:
		return r.ClassStructure
	case CategoryFunctionalPatterns:
		return r.FunctionalPatterns
	}
	return nil
}

// Set replaces the excerpts for a category.
func (r *SearchResults) Set(c SearchCategory, excerpts []CodeExcerpt) {
	switch c {
	case CategoryErrorHandling:
		r.ErrorHandling = excerpts
	case CategoryNamingStyle:
		r.NamingStyle = excerpts
	case CategoryComments:
		r.Comments = excerpts
	case CategoryTesting:
		r.Testing = excerpts
	case CategoryAsyncPatterns:
		r.AsyncPatterns = excerpts
	case CategoryValidation:
		r.Validation = excerpts
	case CategoryLogging:
		r.Logging = excerpts
	case CategoryConfiguration:
		r.Configuration = excerpts
	case CategoryClassStructure:
		r.ClassStructure = excerpts
	case CategoryFunctionalPatterns:
		r.FunctionalPatterns = excerpts
	}
}

// Append adds an excerpt to a category, capped at limit entries.
// Returns true if the excerpt was added.
func (r *SearchResults) Append(c SearchCategory, excerpt CodeExcerpt, limit int) bool {
	current := r.Get(c)
	if len(current) >= limit {
		return false
	}
	r.Set(c, append(current, excerpt))
	return true
}

// TotalCount returns the number of excerpts across all categories.
func (r *SearchResults) TotalCount() int {
	total := 0
	for _, c := range AllCategories() {
		total += len(r.Get(c))
	}
	return total
}

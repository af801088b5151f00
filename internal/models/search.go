package models

// SearchResultType is the kind of page a search hit points to.
type SearchResultType string

const (
	SearchResultDocs    SearchResultType = "docs"
	SearchResultBlog    SearchResultType = "blog"
	SearchResultRelease SearchResultType = "release"
)

// SearchResult is a single record returned by the external search API.
type SearchResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	URL          string           `json:"url"`
	Type         SearchResultType `json:"type"`
	Breadcrumbs  []string         `json:"breadcrumbs"`
	LastModified string           `json:"lastModified"`
}

// SearchResponse is the body of GET /api/search?q=<query>.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

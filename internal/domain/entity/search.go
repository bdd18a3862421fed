package entity

// SearchResult is one entry scraped from the search engine results page.
// Ephemeral: it only exists serialized inside a ToolResult payload.
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Screenshot is a rendered capture of the current page.
type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

package rod

// EngineProfile holds the site-specific pieces of the search flow: where the
// engine lives, how to find its query box, and how to read results off the
// page. Swapping engines means swapping profiles, not session code.
type EngineProfile struct {
	Name string

	// HomeURL is the entry page loaded by OpenSearchEngine.
	HomeURL string

	// SearchBoxSelector locates the primary query input.
	SearchBoxSelector string

	// ResultsSelector is the container that signals results have rendered.
	ResultsSelector string

	// ResultsJS runs in page context and returns [{title, url}, ...] in
	// document order.
	ResultsJS string

	// ContentSelectors is the ordered fallback chain tried by FetchPage
	// before giving up and taking whole-page text.
	ContentSelectors []string
}

// DuckDuckGoProfile targets the HTML-only DuckDuckGo frontend, which renders
// results without JavaScript and keeps its markup stable.
func DuckDuckGoProfile() EngineProfile {
	return EngineProfile{
		Name:              "duckduckgo",
		HomeURL:           "https://html.duckduckgo.com/html/",
		SearchBoxSelector: `input[name="q"]`,
		ResultsSelector:   "#links",
		ResultsJS: `() => {
			const links = document.querySelectorAll("#links .result .result__a");
			return Array.from(links).map(a => ({
				title: a.textContent.trim(),
				url: a.href,
			}));
		}`,
		ContentSelectors: []string{"article", "main", "#content", ".content"},
	}
}

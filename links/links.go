// Package links suggests practice resources for a lab experiment: an online
// compiler when the topic is a programming exercise in a known language,
// otherwise a set of STEM simulation searches. A tutorial search is always
// appended, so the result is never empty.
package links

import (
	"fmt"
	"strings"
)

// Link is one suggested external resource.
type Link struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

const (
	programizURL  = "https://www.programiz.com/%s/online-compiler/"
	phetURL       = "https://phet.colorado.edu/en/simulations/filter?sort=relevance&q=%s"
	vlabCatalog   = "https://www.vlab.co.in/broad-area-computer-science-and-engineering"
	olabsURL      = "https://www.olabs.edu.in/?pg=search&q=%s"
	youtubeSearch = "https://www.youtube.com/results?search_query=%s+tutorial"
)

// Detect reports the compiler signature for topic within subject, if any.
func Detect(topic, subject string) (Signature, bool) {
	combined := strings.ToLower(subject + " " + topic)
	for _, sig := range signatures {
		if strings.Contains(combined, sig.Keyword) {
			return sig, true
		}
	}
	// Pad so phrases ending in a space also match at the end of the text.
	padded := combined + " "
	for _, phrase := range plainCPhrases {
		if strings.Contains(padded, phrase) {
			return plainC, true
		}
	}
	return Signature{}, false
}

// ForTopic returns the simulation links for topic. subject may be empty; it
// only takes part in language detection.
func ForTopic(topic, subject string) []Link {
	query := searchQuery(topic)
	var out []Link

	if sig, ok := Detect(topic, subject); ok {
		out = append(out, Link{
			Source:      fmt.Sprintf("Programiz (%s)", sig.Label),
			URL:         fmt.Sprintf(programizURL, sig.Slug),
			Description: fmt.Sprintf("Online %s compiler, ready to code", sig.Label),
		})
	} else {
		out = append(out,
			Link{
				Source:      "PhET Simulations",
				URL:         fmt.Sprintf(phetURL, query),
				Description: "Interactive STEM simulations by University of Colorado",
			},
			Link{
				Source:      "Virtual Labs India",
				URL:         vlabCatalog,
				Description: "IIT virtual lab experiments",
			},
			Link{
				Source:      "OLabs",
				URL:         fmt.Sprintf(olabsURL, query),
				Description: "Virtual science labs for schools and colleges",
			},
		)
	}

	return append(out, Link{
		Source:      "Search on YouTube",
		URL:         fmt.Sprintf(youtubeSearch, query),
		Description: "Watch tutorials on YouTube for: " + topic,
	})
}

func searchQuery(topic string) string {
	return strings.ReplaceAll(topic, " ", "+")
}

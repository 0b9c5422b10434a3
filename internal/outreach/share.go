package outreach

import (
	"fmt"
	"net/url"
	"strings"

	"ms-storefront/internal/models"
)

// Links are the share targets of one event.
type Links struct {
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	Copy     string `json:"copy"`
}

// ShareLinks builds the share targets for e. origin is the public site root without a trailing slash.
func ShareLinks(origin string, e models.Event) Links {
	eventURL := fmt.Sprintf("%s/events/%s", strings.TrimRight(origin, "/"), url.PathEscape(e.ID))
	text := fmt.Sprintf("Check out %s - %s", e.Title, e.Description)

	return Links{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + escape(eventURL),
		Twitter:  "https://twitter.com/intent/tweet?text=" + escape(text) + "&url=" + escape(eventURL),
		Copy:     eventURL,
	}
}

// escape encodes like a browser's encodeURIComponent.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

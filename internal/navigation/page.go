package navigation

import (
	"errors"
	"fmt"
)

var ErrUnknownPage = errors.New("unknown page")

// Page is the closed set of screens.
type Page int

const (
	Home Page = iota
	Events
	EventDetail
	Submit
	About
	Login
	Signup
)

var pageNames = [...]string{
	Home:        "home",
	Events:      "events",
	EventDetail: "event-detail",
	Submit:      "submit",
	About:       "about",
	Login:       "login",
	Signup:      "signup",
}

// Pages lists every page in declaration order.
func Pages() []Page {
	return []Page{Home, Events, EventDetail, Submit, About, Login, Signup}
}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return fmt.Sprintf("Page(%d)", int(p))
	}
	return pageNames[p]
}

func (p Page) Valid() bool {
	return p >= Home && p <= Signup
}

func ParsePage(name string) (Page, error) {
	for i, n := range pageNames {
		if n == name {
			return Page(i), nil
		}
	}
	return Home, fmt.Errorf("%w: %q", ErrUnknownPage, name)
}

func (p Page) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPage, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Page) UnmarshalText(text []byte) error {
	parsed, err := ParsePage(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

package navigation

import (
	"ms-storefront/internal/models"
)

// State is a snapshot of where a session is.
type State struct {
	Page            Page         `json:"page"`
	SelectedEventID string       `json:"selectedEventId,omitempty"`
	PendingRedirect *Page        `json:"pendingRedirect,omitempty"`
	User            *models.User `json:"user,omitempty"`
	// ScrollToTop is set on every navigation.
	ScrollToTop bool `json:"scrollToTop"`
}

// Controller owns the current page, the selected event, the pending post-login target and the user.
// It is not safe for concurrent use; the owning session serializes access.
type Controller struct {
	page     Page
	selected string
	pending  *Page
	user     *models.User
}

func NewController() *Controller {
	return &Controller{page: Home}
}

// Navigate moves to page. The submit page requires a user; without one the
// controller lands on login and remembers submit as the post-login target.
func (c *Controller) Navigate(page Page, eventID string) (State, error) {
	if !page.Valid() {
		return c.State(), ErrUnknownPage
	}

	if page == Submit && c.user == nil {
		target := Submit
		c.pending = &target
		c.page = Login
		return c.scrolled(), nil
	}

	c.page = page
	if eventID != "" {
		c.selected = eventID
	}
	return c.scrolled(), nil
}

// LoggedIn sets the user after login or signup and follows a pending redirect if there is one.
func (c *Controller) LoggedIn(user models.User) State {
	c.user = &user
	if c.pending != nil {
		c.page = *c.pending
		c.pending = nil
	} else {
		c.page = Home
	}
	return c.State()
}

// LoggedOut clears the user and returns home. A pending redirect is kept.
func (c *Controller) LoggedOut() State {
	c.user = nil
	c.page = Home
	return c.State()
}

func (c *Controller) Page() Page { return c.page }

func (c *Controller) SelectedEventID() string { return c.selected }

func (c *Controller) User() *models.User {
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Controller) State() State {
	s := State{
		Page:            c.page,
		SelectedEventID: c.selected,
		User:            c.User(),
	}
	if c.pending != nil {
		p := *c.pending
		s.PendingRedirect = &p
	}
	return s
}

func (c *Controller) scrolled() State {
	s := c.State()
	s.ScrollToTop = true
	return s
}

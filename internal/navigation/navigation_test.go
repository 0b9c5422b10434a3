package navigation

import (
	"encoding/json"
	"testing"

	"ms-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	for _, p := range Pages() {
		parsed, err := ParsePage(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePage("admin")
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestPageJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Page Page `json:"page"`
	}{EventDetail})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":"event-detail"}`, string(b))

	var in struct {
		Page Page `json:"page"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"page":"signup"}`), &in))
	assert.Equal(t, Signup, in.Page)

	assert.Error(t, json.Unmarshal([]byte(`{"page":"nowhere"}`), &in))
}

func TestSubmitWhileLoggedOutRedirectsToLoginThenSubmit(t *testing.T) {
	c := NewController()

	state, err := c.Navigate(Submit, "")
	require.NoError(t, err)
	assert.Equal(t, Login, state.Page)
	require.NotNil(t, state.PendingRedirect)
	assert.Equal(t, Submit, *state.PendingRedirect)
	assert.True(t, state.ScrollToTop)

	state = c.LoggedIn(models.User{ID: "1", Name: "jo", Email: "jo@example.com"})
	assert.Equal(t, Submit, state.Page)
	assert.Nil(t, state.PendingRedirect)
}

func TestLoginWithoutPendingGoesHome(t *testing.T) {
	c := NewController()
	_, err := c.Navigate(About, "")
	require.NoError(t, err)

	state := c.LoggedIn(models.User{ID: "1", Name: "jo"})
	assert.Equal(t, Home, state.Page)
}

func TestSubmitWhileLoggedIn(t *testing.T) {
	c := NewController()
	c.LoggedIn(models.User{ID: "1", Name: "jo"})

	state, err := c.Navigate(Submit, "")
	require.NoError(t, err)
	assert.Equal(t, Submit, state.Page)
	assert.Nil(t, state.PendingRedirect)
}

func TestNavigateKeepsSelectedEventWhenNoneGiven(t *testing.T) {
	c := NewController()

	_, err := c.Navigate(EventDetail, "3")
	require.NoError(t, err)
	state, err := c.Navigate(Events, "")
	require.NoError(t, err)

	assert.Equal(t, Events, state.Page)
	assert.Equal(t, "3", state.SelectedEventID)
}

func TestLogoutClearsUserAndGoesHome(t *testing.T) {
	c := NewController()
	c.LoggedIn(models.User{ID: "1", Name: "jo"})
	_, _ = c.Navigate(Events, "")

	state := c.LoggedOut()
	assert.Equal(t, Home, state.Page)
	assert.Nil(t, state.User)
	assert.Nil(t, c.User())
}

func TestNavigateRejectsInvalidPage(t *testing.T) {
	c := NewController()
	_, err := c.Navigate(Page(99), "")
	assert.ErrorIs(t, err, ErrUnknownPage)
	assert.Equal(t, Home, c.Page())
}

package cart

import (
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romich96/AlexCoffee/internal/models"
)

func TestFromSessionCreatesEmptyCartLazily(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-key-0123456789abcdef0123456"))
	session := sessions.NewSession(store, SessionName)
	session.Values = make(map[interface{}]interface{})

	c := FromSession(session)
	require.NotNil(t, c)
	assert.Zero(t, c.Size())

	// Mutations land on the session-held instance.
	require.NoError(t, c.Add(&models.Product{ID: 1, Title: "Americano", Price: 50}, 2))
	again := FromSession(session)
	assert.Same(t, c, again)
	assert.Equal(t, 2, again.Size())
}

package handlers

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romich96/AlexCoffee/internal/checkout"
	"github.com/romich96/AlexCoffee/internal/mailer"
	"github.com/romich96/AlexCoffee/internal/models"
	"github.com/romich96/AlexCoffee/internal/store"
)

var checkoutTokenRe = regexp.MustCompile(`name="checkout_token" value="([^"]+)"`)

func newShopServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate("../../migrations"))

	templates := NewTemplateCache()
	require.NoError(t, templates.Load("../../templates"))

	h := &ShopHandler{
		Store:        s,
		Templates:    templates,
		SessionStore: sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")),
		Checkout:     checkout.NewService(s, mailer.LogMailer{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/cart", h.ViewCart)
	mux.HandleFunc("POST /cart/add", h.AddToCart)
	mux.HandleFunc("/checkout", h.CheckoutForm)
	mux.HandleFunc("POST /checkout", h.SubmitCheckout)
	mux.HandleFunc("/order/confirmed", h.OrderConfirmed)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, s
}

// newBrowser returns a client holding its own session cookie, with
// redirects left unfollowed so tests can assert on Location headers.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func seedProduct(t *testing.T, s *store.Store, title string, available bool) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:     title,
		URL:       models.Slugify(title),
		Article:   models.GenerateArticle(),
		Price:     50,
		Available: available,
	}
	require.NoError(t, s.CreateProduct(p))
	return p
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(target, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func addToCart(t *testing.T, client *http.Client, base string, productID int64) {
	t.Helper()
	resp := postForm(t, client, base+"/cart/add", url.Values{"product_id": {strconv.FormatInt(productID, 10)}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/cart", resp.Header.Get("Location"))
}

// checkoutToken loads the checkout form and extracts the one-shot token
// from the hidden field, the way a browser submission would carry it.
func checkoutToken(t *testing.T, client *http.Client, base string) string {
	t.Helper()
	resp, err := client.Get(base + "/checkout")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	m := checkoutTokenRe.FindSubmatch(body)
	require.NotNil(t, m, "checkout form should carry a token")
	return string(m[1])
}

func contactForm(token string) url.Values {
	return url.Values{
		"checkout_token": {token},
		"name":           {"Alex"},
		"email":          {"alex@example.com"},
		"phone":          {"+1 555 0100"},
		"address":        {"1 Main St"},
	}
}

func orderCount(t *testing.T, s *store.Store) int {
	t.Helper()
	n, err := s.GetTotalOrdersCount()
	require.NoError(t, err)
	return n
}

func TestSubmitCheckoutPlacesOneOrder(t *testing.T) {
	srv, s := newShopServer(t)
	client := newBrowser(t)
	p := seedProduct(t, s, "Americano", true)

	addToCart(t, client, srv.URL, p.ID)
	form := contactForm(checkoutToken(t, client, srv.URL))

	resp := postForm(t, client, srv.URL+"/checkout", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/order/confirmed?id=")
	require.Equal(t, 1, orderCount(t, s))

	// Re-posting the identical form (back button, double click) must not
	// place a second order: the token was consumed with the first one.
	resp = postForm(t, client, srv.URL+"/checkout", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))
	assert.Equal(t, 1, orderCount(t, s))
}

func TestSubmitCheckoutRejectsStaleToken(t *testing.T) {
	srv, s := newShopServer(t)
	client := newBrowser(t)
	p := seedProduct(t, s, "Espresso", true)

	addToCart(t, client, srv.URL, p.ID)
	checkoutToken(t, client, srv.URL) // a fresh token is in the session

	resp := postForm(t, client, srv.URL+"/checkout", contactForm("not-the-issued-token"))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))
	assert.Zero(t, orderCount(t, s))

	// The cart itself is untouched; reloading the form issues a new token.
	assert.NotEmpty(t, checkoutToken(t, client, srv.URL))
}

func TestAddToCartRejectsUnavailableProduct(t *testing.T) {
	srv, s := newShopServer(t)
	client := newBrowser(t)
	p := seedProduct(t, s, "Sold Out Blend", false)

	resp := postForm(t, client, srv.URL+"/cart/add", url.Values{"product_id": {strconv.FormatInt(p.ID, 10)}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// Nothing was carted: checkout bounces the empty cart back.
	got, err := client.Get(srv.URL + "/checkout")
	require.NoError(t, err)
	got.Body.Close()
	assert.Equal(t, http.StatusSeeOther, got.StatusCode)
	assert.Equal(t, "/cart", got.Header.Get("Location"))
}

func TestOrderConfirmedIsSessionScoped(t *testing.T) {
	srv, s := newShopServer(t)
	owner := newBrowser(t)
	p := seedProduct(t, s, "Latte", true)

	addToCart(t, owner, srv.URL, p.ID)
	resp := postForm(t, owner, srv.URL+"/checkout", contactForm(checkoutToken(t, owner, srv.URL)))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	confirmURL := resp.Header.Get("Location")
	require.Contains(t, confirmURL, "/order/confirmed?id=")

	got, err := owner.Get(srv.URL + confirmURL)
	require.NoError(t, err)
	body, err := io.ReadAll(got.Body)
	got.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, got.StatusCode)
	assert.Contains(t, string(body), "N-0000")

	// Another session guessing the order id sees no contact details.
	stranger := newBrowser(t)
	got, err = stranger.Get(srv.URL + confirmURL)
	require.NoError(t, err)
	got.Body.Close()
	assert.Equal(t, http.StatusSeeOther, got.StatusCode)
	assert.Equal(t, "/", got.Header.Get("Location"))
}

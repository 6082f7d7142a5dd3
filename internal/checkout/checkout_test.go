package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romich96/AlexCoffee/internal/cart"
	"github.com/romich96/AlexCoffee/internal/models"
)

type fakeStore struct {
	users    []*models.User
	orders   []*models.Order
	failSave bool
	nextID   int64
}

func (f *fakeStore) CreateOrder(order *models.Order) error {
	if f.failSave {
		return errors.New("db down")
	}
	f.nextID++
	order.ID = f.nextID
	order.Number = models.FormatNumber(order.ID)
	// Persist a deep copy so later mutation of the argument is visible in tests.
	saved := *order
	saved.Positions = append([]models.SalePosition(nil), order.Positions...)
	f.orders = append(f.orders, &saved)
	return nil
}

func (f *fakeStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateClient(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, user)
	return nil
}

type fakeNotifier struct {
	sent []string
	fail bool
	// orderPersisted records whether the store already held the order
	// when the notification fired.
	sawPersisted bool
	store        *fakeStore
}

func (f *fakeNotifier) SendOrder(order *models.Order) error {
	f.sent = append(f.sent, order.Number)
	if f.store != nil {
		f.sawPersisted = len(f.store.orders) > 0
	}
	if f.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

func validContact() Contact {
	return Contact{Name: "Alex", Email: "alex@example.com", Phone: "+380501234567", Address: "Kyiv"}
}

func filledCart(t *testing.T) *cart.ShoppingCart {
	t.Helper()
	c := cart.New()
	require.NoError(t, c.Add(&models.Product{ID: 1, Title: "Americano", Price: 50}, 2))
	require.NoError(t, c.Add(&models.Product{ID: 2, Title: "Latte", Price: 30}, 1))
	return c
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeNotifier{})

	var ve *models.ValidationError

	_, err := svc.Place(cart.New(), validContact())
	require.ErrorAs(t, err, &ve)

	_, err = svc.Place(nil, validContact())
	require.ErrorAs(t, err, &ve)

	assert.Empty(t, store.orders, "no zero-item order may be created")
}

func TestPlaceValidatesContact(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeNotifier{})

	cases := []struct {
		name    string
		contact Contact
	}{
		{"blank name", Contact{Email: "a@b.com", Phone: "123"}},
		{"blank email", Contact{Name: "Alex", Phone: "123"}},
		{"bad email", Contact{Name: "Alex", Email: "not-an-email", Phone: "123"}},
		{"blank phone", Contact{Name: "Alex", Email: "a@b.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := filledCart(t)
			_, err := svc.Place(c, tc.contact)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, 3, c.Size(), "cart untouched after validation failure")
		})
	}
	assert.Empty(t, store.orders)
}

func TestPlaceCreatesOrderAndClearsCart(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{store: store}
	svc := NewService(store, notifier)

	c := filledCart(t)
	order, err := svc.Place(c, validContact())
	require.NoError(t, err)

	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, "N-000002", order.Number) // id 1 went to the new client
	assert.Equal(t, 130.0, order.Total())
	require.Len(t, order.Positions, 2)

	assert.Equal(t, 0, c.Size(), "cart cleared after successful checkout")
	assert.Zero(t, c.Total())

	require.Len(t, notifier.sent, 1)
	assert.True(t, notifier.sawPersisted, "order persisted before notification")
}

func TestOrderSnapshotIndependentOfCartMutation(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeNotifier{})

	c := filledCart(t)
	order, err := svc.Place(c, validContact())
	require.NoError(t, err)

	// Mutate the cart after checkout; the persisted order must not move.
	require.NoError(t, c.Add(&models.Product{ID: 1, Title: "Americano", Price: 80}, 5))
	c.Remove(2)

	require.Len(t, store.orders, 1)
	persisted := store.orders[0]
	require.Len(t, persisted.Positions, 2)
	assert.Equal(t, 2, persisted.Positions[0].Quantity)
	assert.Equal(t, 50.0, persisted.Positions[0].Price)
	assert.Equal(t, 130.0, order.Total())
}

func TestNotificationFailureDoesNotFailOrder(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{fail: true}
	svc := NewService(store, notifier)

	c := filledCart(t)
	order, err := svc.Place(c, validContact())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Len(t, store.orders, 1)
	assert.Equal(t, 0, c.Size(), "cart still cleared even when the email is lost")
}

func TestPersistFailureKeepsCart(t *testing.T) {
	store := &fakeStore{failSave: true}
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier)

	c := filledCart(t)
	_, err := svc.Place(c, validContact())
	require.Error(t, err)

	assert.Equal(t, 3, c.Size(), "cart must survive a failed persist")
	assert.Empty(t, notifier.sent, "no notification for an unsaved order")
}

func TestPlaceReusesMatchingClient(t *testing.T) {
	existing := &models.User{ID: 7, Name: "Alex", Email: "alex@example.com", Phone: "+380501234567", Role: models.RoleClient}
	store := &fakeStore{users: []*models.User{existing}, nextID: 7}
	svc := NewService(store, &fakeNotifier{})

	order, err := svc.Place(filledCart(t), validContact())
	require.NoError(t, err)

	assert.Equal(t, int64(7), order.ClientID)
	assert.Len(t, store.users, 1, "no duplicate client record")
}

func TestPlaceRegistersNewClientOnTripleMismatch(t *testing.T) {
	// Same email, different name: the (name, email, phone) triple decides.
	existing := &models.User{ID: 7, Name: "Someone Else", Email: "alex@example.com", Phone: "+380501234567", Role: models.RoleClient}
	store := &fakeStore{users: []*models.User{existing}, nextID: 7}
	svc := NewService(store, &fakeNotifier{})

	order, err := svc.Place(filledCart(t), validContact())
	require.NoError(t, err)

	assert.NotEqual(t, existing.ID, order.ClientID)
	assert.Len(t, store.users, 2)
	assert.Equal(t, models.RoleClient, store.users[1].Role)
}

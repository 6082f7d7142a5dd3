package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusNew, StatusAccepted, true},
		{StatusNew, StatusRejected, true},
		{StatusNew, StatusDone, false},
		{StatusAccepted, StatusDone, true},
		{StatusAccepted, StatusRejected, true},
		{StatusAccepted, StatusNew, false},
		{StatusDone, StatusNew, false},
		{StatusDone, StatusAccepted, false},
		{StatusRejected, StatusAccepted, false},
		{StatusRejected, StatusDone, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusAndRoleValidity(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.False(t, Status("SHIPPED").Valid())
	assert.True(t, RoleManager.Valid())
	assert.False(t, Role("superuser").Valid())
}

func TestUserEqualsByTriple(t *testing.T) {
	a := &User{ID: 1, Name: "Alex", Email: "alex@example.com", Phone: "123"}
	b := &User{ID: 99, Name: "Alex", Email: "alex@example.com", Phone: "123", Role: RoleManager}

	assert.True(t, a.Equals(b), "identity and role are not part of equality")

	b.Phone = "456"
	assert.False(t, a.Equals(b))
	assert.False(t, a.Equals(nil))
}

func TestUserValidateRequiresContactFields(t *testing.T) {
	var ve *ValidationError

	err := (&User{Email: "a@b.com", Phone: "1"}).Validate()
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	err = (&User{Name: "Alex", Phone: "1"}).Validate()
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)

	err = (&User{Name: "Alex", Email: "a@b.com"}).Validate()
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "phone", ve.Field)

	assert.NoError(t, (&User{Name: "Alex", Email: "a@b.com", Phone: "1"}).Validate())
}

func TestProductValidate(t *testing.T) {
	p := &Product{Title: "Americano", URL: "americano", Price: 25}
	assert.NoError(t, p.Validate())

	assert.Error(t, (&Product{URL: "x", Price: 1}).Validate())
	assert.Error(t, (&Product{Title: "x", Price: 1}).Validate())
	assert.Error(t, (&Product{Title: "x", URL: "x", Price: -1}).Validate())
}

func TestSalePositionSum(t *testing.T) {
	sp := SalePosition{Quantity: 3, Price: 12.5}
	assert.Equal(t, 37.5, sp.Sum())
}

func TestOrderTotal(t *testing.T) {
	o := &Order{Positions: []SalePosition{
		{Quantity: 2, Price: 50},
		{Quantity: 1, Price: 30},
	}}
	assert.Equal(t, 130.0, o.Total())
	assert.Zero(t, (&Order{}).Total())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "N-000042", FormatNumber(42))
	assert.Equal(t, "N-123456", FormatNumber(123456))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Coffee Beans":        "coffee-beans",
		"  Fancy --- Roast  ": "fancy-roast",
		"Éspresso 2000":       "spresso-2000",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestGenerateArticle(t *testing.T) {
	a := GenerateArticle()
	require.Len(t, a, 8)
	for _, r := range a {
		assert.True(t, r >= '0' && r <= '9')
	}
}

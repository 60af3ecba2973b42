package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundloss/foundloss/internal/api/apitest"
	"github.com/foundloss/foundloss/internal/errs"
	"github.com/foundloss/foundloss/internal/model"
)

func newClient(t *testing.T) (*Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return New(srv.URL), srv
}

func TestNewAppendsAPIBase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://host/api", New("http://host").base)
	assert.Equal(t, "http://host/api", New("http://host/").base)
	assert.Equal(t, "http://host/api", New("http://host/api").base)
}

func TestRegisterLoginMe(t *testing.T) {
	cli, _ := newClient(t)
	ctx := context.Background()

	tok, err := cli.Register(ctx, model.Profile{
		Email:    "a@b.com",
		Password: "abc123",
		FullName: "Ada B",
		Phone:    "+1 555-123-4567",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, "a@b.com", tok.User.Email)

	// Duplicate email maps to ErrAlreadyExists with the reason preserved.
	_, err = cli.Register(ctx, model.Profile{Email: "a@b.com", Password: "x", FullName: "d", Phone: "p"})
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already registered", apiErr.Detail)

	// Bad password maps to ErrUnauthorized.
	_, err = cli.Login(ctx, model.Credentials{Email: "a@b.com", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	logged, err := cli.Login(ctx, model.Credentials{Email: "a@b.com", Password: "abc123"})
	require.NoError(t, err)

	me, err := cli.Me(ctx, logged.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tok.User.ID, me.ID)

	_, err = cli.Me(ctx, "bogus")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestItemLifecycleEndpoints(t *testing.T) {
	cli, srv := newClient(t)
	ctx := context.Background()
	_, token := srv.AddUser("o@e.com", "pw", "Owner", "+1 555 000 1111")

	created, err := cli.CreateItem(ctx, token, model.ItemDraft{
		Type:         model.TypeLost,
		Title:        "Black iPhone 13",
		Description:  "Blue case, cracked corner",
		Category:     "Electronics",
		Color:        "Black",
		Location:     "Main Street coffee shop",
		ContactEmail: "o@e.com",
		ContactPhone: "+1 555 000 1111",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, created.Status)
	require.NotEmpty(t, created.ID)

	got, err := cli.GetItem(ctx, token, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	_, err = cli.GetItem(ctx, token, "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)

	mine, err := cli.MyItems(ctx, token)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, cli.UpdateStatus(ctx, token, created.ID, model.StatusResolved))
	after, ok := srv.Item(created.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusResolved, after.Status)

	// Unknown status never leaves the client.
	before := srv.Requests
	err = cli.UpdateStatus(ctx, token, created.ID, model.ItemStatus("gone"))
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, before, srv.Requests)
}

func TestListItemsPassesConstraintsThrough(t *testing.T) {
	cli, srv := newClient(t)
	ctx := context.Background()
	_, token := srv.AddUser("o@e.com", "pw", "Owner", "1")
	srv.AddItem(model.Item{Type: model.TypeFound, Title: "Keys", Category: "Keys", UserID: "u2"})
	srv.AddItem(model.Item{Type: model.TypeLost, Title: "Wallet", Category: "Bags & Wallets", UserID: "u2"})

	found, err := cli.ListItems(ctx, token, ListOptions{Type: model.TypeFound, Limit: 50})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, model.TypeFound, found[0].Type)

	all, err := cli.ListItems(ctx, token, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestContactOwnerDisclosesChannelInfo(t *testing.T) {
	cli, srv := newClient(t)
	ctx := context.Background()
	_, token := srv.AddUser("f@e.com", "pw", "Finder", "1")
	item := srv.AddItem(model.Item{
		Type:         model.TypeFound,
		Title:        "Umbrella",
		ContactEmail: "owner@e.com",
		ContactPhone: "+1 (555) 123-4567",
		UserID:       "u2",
	})

	res, err := cli.ContactOwner(ctx, token, model.ContactRequest{
		ItemID:  item.ID,
		Method:  model.MethodWhatsApp,
		Message: "I think this is yours",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "+1 (555) 123-4567", res.ContactInfo.Phone)
	assert.Equal(t, model.MethodWhatsApp, res.ContactInfo.Method)

	_, err = cli.ContactOwner(ctx, token, model.ContactRequest{ItemID: "missing", Method: model.MethodEmail, Message: "hi"})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBackendRejectionSurfacesDetailVerbatim(t *testing.T) {
	cli, srv := newClient(t)
	srv.FailNext(http.StatusBadRequest, "Item type cannot change")

	_, err := cli.MyItems(context.Background(), "tok")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Item type cannot change", apiErr.Error())
	assert.NotErrorIs(t, err, errs.ErrNotFound)
	assert.NotErrorIs(t, err, errs.ErrUnauthorized)
}

func TestNetworkErrorPassedThrough(t *testing.T) {
	srv := apitest.New()
	cli := New(srv.URL)
	srv.Close() // connection refused from here on

	_, err := cli.MyItems(context.Background(), "tok")
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "transport failures must not look like backend rejections")
}

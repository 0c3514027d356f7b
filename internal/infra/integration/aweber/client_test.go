package aweber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webinarlab/lead-intake/internal/config"
)

func testConfig() config.AWeberConfig {
	return config.AWeberConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
		AccountID:    "111",
		ListID:       "222",
	}
}

func newTestClient(baseURL, authURL string) *Client {
	c := NewClient(testConfig())
	c.BaseURL = baseURL
	c.AuthURL = authURL
	return c
}

func TestAccessTokenExchange(t *testing.T) {
	var gotGrant tokenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotGrant))
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "fresh-token"})
	}))
	defer srv.Close()

	client := newTestClient("unused", srv.URL)
	token, err := client.AccessToken(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, "refresh_token", gotGrant.GrantType)
	assert.Equal(t, "refresh-token", gotGrant.RefreshToken)
	assert.Equal(t, "client-id", gotGrant.ClientID)
	assert.Equal(t, "client-secret", gotGrant.ClientSecret)
}

func TestAccessTokenNotConfigured(t *testing.T) {
	client := NewClient(config.AWeberConfig{})
	_, err := client.AccessToken(context.Background())
	assert.Error(t, err)
}

func TestFindSubscriberFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/111/lists/222/subscribers", r.URL.Path)
		assert.Equal(t, "find", r.URL.Query().Get("ws.op"))
		assert.Equal(t, "mario@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(findSubscribersResponse{Entries: []Subscriber{
			{ID: 42, SelfLink: "https://api.aweber.com/1.0/accounts/111/lists/222/subscribers/42", Email: "mario@example.com", Tags: []string{"live-3-agosto"}},
		}})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "unused")
	sub, err := client.FindSubscriber(context.Background(), "tok", "mario@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, sub)
	assert.EqualValues(t, 42, sub.ID)
	assert.True(t, sub.HasTag("live-3-agosto"))
	assert.False(t, sub.HasTag("altro"))
}

func TestFindSubscriberNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(findSubscribersResponse{})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "unused")
	sub, err := client.FindSubscriber(context.Background(), "tok", "nessuno@example.com")

	assert.NoError(t, err)
	assert.Nil(t, sub)
}

func TestCreateSubscriberDisablesProviderMerge(t *testing.T) {
	var gotPayload createSubscriberRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/accounts/111/lists/222/subscribers", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "unused")
	err := client.CreateSubscriber(context.Background(), "tok", CreateSubscriberInput{
		Email: "mario@example.com",
		Name:  "Mario Rossi",
		Phone: "+393331234567",
		Tags:  []string{"live-3-agosto"},
	})

	assert.NoError(t, err)
	assert.False(t, gotPayload.UpdateExisting)
	assert.Equal(t, "+393331234567", gotPayload.CustomFields["phone"])
	assert.Equal(t, []string{"live-3-agosto"}, gotPayload.Tags)
}

func TestUpdateSubscriberPatchesSelfLink(t *testing.T) {
	var gotPayload patchSubscriberRequest
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
	}))
	defer srv.Close()

	client := newTestClient("unused", "unused")
	sub := &Subscriber{ID: 42, SelfLink: srv.URL + "/subscribers/42"}
	err := client.UpdateSubscriber(context.Background(), "tok", sub, "Mario Rossi", "+393331234567")

	assert.NoError(t, err)
	assert.Equal(t, "PATCH", gotMethod)
	assert.Equal(t, "/subscribers/42", gotPath)
	assert.Equal(t, "Mario Rossi", gotPayload.Name)
	assert.Equal(t, "+393331234567", gotPayload.CustomFields["phone"])
}

func TestAddTagPostsToTagsSubResource(t *testing.T) {
	var gotPath string
	var gotPayload addTagRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
	}))
	defer srv.Close()

	client := newTestClient("unused", "unused")
	sub := &Subscriber{ID: 42, SelfLink: srv.URL + "/subscribers/42"}
	err := client.AddTag(context.Background(), "tok", sub, "live-3-agosto")

	assert.NoError(t, err)
	assert.Equal(t, "/subscribers/42/tags", gotPath)
	assert.Equal(t, "live-3-agosto", gotPayload.Name)
}

func TestErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/forbidden"):
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, "app not approved")
		case strings.HasPrefix(r.URL.Path, "/conflict"):
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": {"message": "already subscribed"}}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := newTestClient("unused", "unused")

	sub := &Subscriber{SelfLink: srv.URL + "/forbidden"}
	err := client.AddTag(context.Background(), "tok", sub, "t")
	assert.True(t, IsPermission(err))
	assert.False(t, IsConflict(err))

	sub = &Subscriber{SelfLink: srv.URL + "/conflict"}
	err = client.AddTag(context.Background(), "tok", sub, "t")
	assert.True(t, IsConflict(err))
	assert.False(t, IsPermission(err))

	sub = &Subscriber{SelfLink: srv.URL + "/boom"}
	err = client.AddTag(context.Background(), "tok", sub, "t")
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.False(t, IsPermission(err))
	assert.False(t, IsConflict(err))
}

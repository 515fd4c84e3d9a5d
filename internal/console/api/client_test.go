package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"bgmsons/internal/catalog"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]catalog.Product{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("secret"))
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer secret", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]catalog.Product{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""))
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestClient_ErrorEnvelopeBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false, "message": "product not found", "status": 404,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.GetProduct(context.Background(), "missing")

	require.True(t, IsNotFound(err))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.Contains(t, statusErr.Error(), "product not found")
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/admin/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds["username"] == "admin" && creds["password"] == "pw" {
			json.NewEncoder(w).Encode(map[string]any{
				"success": true, "message": "Admin login successful", "token": "jwt-token",
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false, "message": "Invalid admin credentials",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)

	token, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	require.Equal(t, "jwt-token", token)

	_, err = c.Login(context.Background(), "admin", "wrong")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.Contains(t, statusErr.Message, "Invalid admin credentials")
}

func TestClient_CreateThenGetRoundTrip(t *testing.T) {
	var stored catalog.Product
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/products":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
			stored.ID = "assigned"
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(stored)
		case r.Method == http.MethodGet && r.URL.Path == "/api/products/assigned":
			json.NewEncoder(w).Encode(stored)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)

	draft := catalog.Product{
		Name:          "Automotive Warning Labels",
		Category:      "automotive",
		Subcategory:   "Warning Labels",
		Images:        []string{"https://example.com/a.jpg"},
		Created:       "2024-05-01",
		Description:   "desc",
		Specification: "spec",
		Features:      "one\ntwo",
	}

	saved, err := c.CreateProduct(context.Background(), &draft)
	require.NoError(t, err)
	require.Equal(t, "assigned", saved.ID)

	fetched, err := c.GetProduct(context.Background(), saved.ID)
	require.NoError(t, err)

	want := draft
	want.ID = saved.ID
	require.Equal(t, &want, fetched)
}

func TestClient_DeleteProduct(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	require.NoError(t, c.DeleteProduct(context.Background(), "p1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/products/p1", gotPath)
}

func TestClient_SendProductEnquiry(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/mail/send-product-enquiry", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.SendProductEnquiry(context.Background(), ProductEnquiry{
		Name: "A", Email: "a@b.c", Phone: "9812345678", Message: "hi", ProductID: "p1",
	})
	require.NoError(t, err)
	require.Equal(t, "p1", payload["productId"])
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore implements CredentialStore for transport tests.
type stubStore struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (s *stubStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

func (s *stubStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cleared = true
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *stubStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := &stubStore{token: token}
	client, err := NewClient(server.URL, store)
	require.NoError(t, err)
	return client, store
}

func TestNewClient(t *testing.T) {
	t.Run("rejects an empty base URL", func(t *testing.T) {
		_, err := NewClient("", &stubStore{})
		assert.Error(t, err)
	})

	t.Run("trims a trailing slash from the base URL", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			json.NewEncoder(w).Encode(User{ID: 1})
		}))
		defer server.Close()

		client, err := NewClient(server.URL+"/", &stubStore{token: "tok"})
		require.NoError(t, err)

		_, err = client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/api/auth/me", gotPath)
	})
}

func TestTransportConventions(t *testing.T) {
	t.Run("attaches bearer token and request ID", func(t *testing.T) {
		var gotAuth, gotRequestID string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-ID")
			json.NewEncoder(w).Encode(User{ID: 1})
		}), "token-xyz")

		_, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer token-xyz", gotAuth)
		assert.NotEmpty(t, gotRequestID)
	})

	t.Run("omits the auth header when signed out", func(t *testing.T) {
		var gotAuth string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(LoginResponse{AccessToken: "t"})
		}), "")

		_, err := client.Login(context.Background(), "a@example.com", "pw")
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("401 clears the credential before the error propagates", func(t *testing.T) {
		client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}), "stale")

		_, err := client.Me(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.True(t, IsUnauthorized(err))
		assert.True(t, store.cleared, "credential must be erased on 401")
	})

	t.Run("non-2xx surfaces the body text", func(t *testing.T) {
		client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"Order not found"}`, http.StatusNotFound)
		}), "tok")

		_, err := client.Order(context.Background(), 42)
		require.Error(t, err)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Contains(t, statusErr.Message, "Order not found")
		assert.False(t, store.cleared, "non-401 failures must not clear the credential")
	})

	t.Run("empty error body falls back to status text", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}), "tok")

		_, err := client.Me(context.Background())
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "Internal Server Error", statusErr.Message)
	})

	t.Run("204 is an empty success", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}), "tok")

		assert.NoError(t, client.DeleteProduct(context.Background(), 3))
	})
}

func TestEndpoints(t *testing.T) {
	t.Run("login posts email and password", func(t *testing.T) {
		var gotBody LoginRequest
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(LoginResponse{
				AccessToken: "fresh-token",
				TokenType:   "bearer",
				User:        User{ID: 1, Email: "a@example.com", Role: RoleAdmin},
			})
		}), "")

		result, err := client.Login(context.Background(), "a@example.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, LoginRequest{Email: "a@example.com", Password: "pw"}, gotBody)
		assert.Equal(t, "fresh-token", result.AccessToken)
		assert.Equal(t, RoleAdmin, result.User.Role)
	})

	t.Run("products passes the search query", func(t *testing.T) {
		var gotQuery string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("query")
			json.NewEncoder(w).Encode([]Product{{ID: 1, Name: "Espresso", Price: "2.50"}})
		}), "tok")

		products, err := client.Products(context.Background(), "esp resso")
		require.NoError(t, err)
		assert.Equal(t, "esp resso", gotQuery)
		require.Len(t, products, 1)
		assert.Equal(t, "2.50", products[0].Price)
	})

	t.Run("create order wraps items in the request body", func(t *testing.T) {
		var gotBody map[string][]OrderItemInput
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/orders", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Order{ID: 9, TotalAmount: "12.00"})
		}), "tok")

		items := []OrderItemInput{{ProductID: 1, Quantity: 2}}
		order, err := client.CreateOrder(context.Background(), items)
		require.NoError(t, err)
		assert.Equal(t, items, gotBody["items"])
		assert.Equal(t, 9, order.ID)
	})

	t.Run("orders passes the limit", func(t *testing.T) {
		var gotLimit string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			json.NewEncoder(w).Encode([]Order{})
		}), "tok")

		_, err := client.Orders(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "5", gotLimit)
	})

	t.Run("inventory patch sends the quantity", func(t *testing.T) {
		var gotBody map[string]int
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/inventory/4", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(Inventory{ProductID: 4, Quantity: 12})
		}), "tok")

		level, err := client.SetInventory(context.Background(), 4, 12)
		require.NoError(t, err)
		assert.Equal(t, 12, gotBody["quantity"])
		assert.Equal(t, 12, level.Quantity)
	})

	t.Run("product update omits unset fields", func(t *testing.T) {
		var gotBody map[string]any
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(Product{ID: 2, Name: "Latte"})
		}), "tok")

		name := "Latte"
		_, err := client.UpdateProduct(context.Background(), 2, ProductUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Latte"}, gotBody)
	})

	t.Run("daily report passes the date", func(t *testing.T) {
		var gotDate string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotDate = r.URL.Query().Get("date")
			json.NewEncoder(w).Encode(DailyReport{Date: "2026-08-30", OrderCount: 3})
		}), "tok")

		report, err := client.DailyReport(context.Background(), "2026-08-30")
		require.NoError(t, err)
		assert.Equal(t, "2026-08-30", gotDate)
		assert.Equal(t, 3, report.OrderCount)
	})
}

//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

type tokenResp struct {
	AccessToken string `json:"access_token"`
}

type ordersResp struct {
	Orders []struct {
		ID         string `json:"id"`
		TotalCents int64  `json:"total_cents"`
		Status     string `json:"status"`
	} `json:"orders"`
}

// The storefront holds a single session, so these steps run in sequence.
func TestSystem_E2E_Storefront(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	email := fmt.Sprintf("user_%d_%d@example.com", time.Now().Unix(), rand.Intn(100000))
	pass := "password123!"

	var reg tokenResp
	doJSON(t, http.MethodPost, baseURL+"/auth/register", map[string]any{
		"name":     "E2E",
		"email":    email,
		"password": pass,
	}, &reg, 201)
	if reg.AccessToken == "" {
		t.Fatalf("empty access_token after register")
	}

	var products []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products?in_stock=true", nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty products")
	}

	pid, _ := products[0]["id"].(float64)
	if pid == 0 {
		t.Fatalf("product id missing in response: %#v", products[0])
	}

	doJSON(t, http.MethodPost, baseURL+"/favorites", map[string]any{"product_id": int(pid)}, nil, 200)
	doJSON(t, http.MethodPost, baseURL+"/cart/items", map[string]any{"product_id": int(pid), "quantity": 2}, nil, 200)

	var created map[string]any
	doJSONAuth(t, http.MethodPost, baseURL+"/orders", reg.AccessToken, nil, &created, 201)

	orderID, _ := created["id"].(string)
	if orderID == "" {
		t.Fatalf("order id missing: %#v", created)
	}

	var mine ordersResp
	doJSONAuth(t, http.MethodGet, baseURL+"/orders", reg.AccessToken, nil, &mine, 200)
	if len(mine.Orders) != 1 || mine.Orders[0].ID != orderID {
		t.Fatalf("orders=%#v want one order %s", mine.Orders, orderID)
	}

	if os.Getenv("E2E_RESTART") != "1" {
		return
	}

	restartStorefrontContainer(t, ctx)
	waitReady(t, ctx, baseURL+"/readyz")

	// Sessions do not survive a restart.
	doJSONAuth(t, http.MethodGet, baseURL+"/orders", reg.AccessToken, nil, nil, 401)

	var again tokenResp
	doJSON(t, http.MethodPost, baseURL+"/auth/login", map[string]any{
		"email":    email,
		"password": pass,
	}, &again, 200)

	// Users persist while orders are reset to the demo history.
	doJSONAuth(t, http.MethodGet, baseURL+"/orders", again.AccessToken, nil, &mine, 200)
	if len(mine.Orders) != 0 {
		t.Fatalf("orders after restart=%d want 0", len(mine.Orders))
	}

	var fav struct {
		Items []map[string]any `json:"items"`
	}
	doJSON(t, http.MethodGet, baseURL+"/favorites", nil, &fav, 200)
	if len(fav.Items) == 0 {
		t.Fatalf("favorites lost across restart")
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()
	doJSONAuth(t, method, url, "", body, out, want)
}

func doJSONAuth(t *testing.T, method, url, token string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

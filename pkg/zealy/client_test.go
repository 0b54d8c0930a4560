package zealy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLeaderboardRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/communities/swapxfi/leaderboard" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "key-123" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "0" {
			t.Errorf("page = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"leaderboard":[{"name":"alice","xp":42},{"name":"bob","xp":7}]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "swapxfi", "key-123")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	entries, err := client.Leaderboard(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name != "alice" || entries[0].XP != 42 {
		t.Fatalf("entries[0] = %+v", entries[0])
	}
}

func TestLeaderboardUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "swapxfi", "key-123")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if _, err := client.Leaderboard(context.Background(), 0, 20); err == nil {
		t.Fatal("expected error on upstream 404")
	}
}

func TestLeaderboardMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "swapxfi", "key-123")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if _, err := client.Leaderboard(context.Background(), 0, 20); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestNewClientRequiresSettings(t *testing.T) {
	if _, err := NewClient("", "swapxfi", "key"); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := NewClient("https://api.example", "", "key"); err == nil {
		t.Fatal("expected error for empty subdomain")
	}
	if _, err := NewClient("https://api.example", "swapxfi", " "); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := (Message{Name: "a", Email: "b", Message: "c"}).Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := (Message{Name: "a", Email: "  ", Message: "c"}).Validate(); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestSendSuccess(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/contact" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"success":"Message sent successfully!"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	msg, err := c.Send(context.Background(), Message{Name: " Ada ", Email: "ada@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Message sent successfully!" {
		t.Fatalf("unexpected reply %q", msg)
	}
	if got.Name != "Ada" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
}

func TestSendMapsRelayErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"bad request", 400, `{"error":"All fields are required"}`, "All fields are required"},
		{"delivery failure", 500, `{"error":"Failed to send message"}`, "Failed to send message"},
		{"not json", 502, `<html>bad gateway</html>`, "Bad Gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Send(context.Background(), Message{Name: "a", Email: "b", Message: "c"})
			var re *RelayError
			if !errors.As(err, &re) {
				t.Fatalf("expected RelayError, got %v", err)
			}
			if re.Status != tc.status || re.Message != tc.want {
				t.Fatalf("unexpected relay error %+v", re)
			}
			if calls != 1 {
				t.Fatalf("expected exactly one attempt, got %d", calls)
			}
		})
	}
}

func TestSendRejectsBlankFieldsWithoutCalling(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	_, err := NewClient(srv.URL).Send(context.Background(), Message{Name: "a"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if calls != 0 {
		t.Fatal("expected no request for an incomplete message")
	}
}

func TestSendHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL).Send(ctx, Message{Name: "a", Email: "b", Message: "c"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

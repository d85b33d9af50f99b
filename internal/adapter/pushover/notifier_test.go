package pushover

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cquispe/portfolio-agent/internal/port/notifier"
)

func TestSend_NotConfigured(t *testing.T) {
	n := NewNotifier("", "")
	err := n.Send(context.Background(), "hola")
	if !errors.Is(err, notifier.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSend_PostsFormPayload(t *testing.T) {
	var gotToken, gotUser, gotMessage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotToken = r.PostForm.Get("token")
		gotUser = r.PostForm.Get("user")
		gotMessage = r.PostForm.Get("message")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier("app-token", "user-key")
	n.endpoint = srv.URL

	if err := n.Send(context.Background(), "📧 Contacto: Ana"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotToken != "app-token" || gotUser != "user-key" {
		t.Errorf("credentials not sent: token=%q user=%q", gotToken, gotUser)
	}
	if gotMessage != "📧 Contacto: Ana" {
		t.Errorf("unexpected message %q", gotMessage)
	}
}

func TestSend_APIErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":["application token is invalid"]}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewNotifier("bad", "user")
	n.endpoint = srv.URL

	if err := n.Send(context.Background(), "x"); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestRegistryFactory(t *testing.T) {
	n, err := notifier.New("pushover", map[string]string{"token": "t", "user": "u"})
	if err != nil {
		t.Fatalf("notifier.New: %v", err)
	}
	if n.Name() != "pushover" {
		t.Errorf("unexpected name %q", n.Name())
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/userdeck/admin-console/internal/core/ports"
	"github.com/userdeck/admin-console/internal/infrastructure/notify"
)

func TestNotificationHandler_List(t *testing.T) {
	e := newEcho()
	notifier := notify.NewMemoryNotifier()
	_ = notifier.Push(context.Background(), ports.Notification{
		ID:        "n1",
		Title:     "User Added",
		Message:   "The user has been successfully added.",
		Level:     ports.LevelSuccess,
		CreatedAt: time.Now().UTC(),
	})
	handler := NewNotificationHandler(notifier)

	req := httptest.NewRequest(http.MethodGet, "/v1/notifications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp notificationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Title != "User Added" {
		t.Fatalf("unexpected notifications: %+v", resp.Data)
	}
}

func TestNotificationHandler_List_Empty(t *testing.T) {
	e := newEcho()
	handler := NewNotificationHandler(notify.NewMemoryNotifier())

	req := httptest.NewRequest(http.MethodGet, "/v1/notifications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "{\"data\":[]}\n" {
		t.Fatalf("expected empty data array, got %s", body)
	}
}

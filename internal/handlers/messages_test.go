package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMessageRejectsBadBody(t *testing.T) {
	for _, body := range []string{`???`, `{}`, `{"message":{}}`, `{"message":{"name":""}}`} {
		rec := postJSON(AddMessage, "/messages/add/message", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, `{"error":"missing information"}`, rec.Body.String())
	}
}

func TestAddMessageRequiresIdentity(t *testing.T) {
	rec := postJSON(AddMessage, "/messages/add/message", `{"message":{"name":"hello"}}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"You are not authenticated"}`, rec.Body.String())
}

func TestMessageIDValidation(t *testing.T) {
	handlers := map[string]struct {
		method  string
		pattern string
		handler http.HandlerFunc
		target  string
	}{
		"get":    {http.MethodGet, "/messages/{messageId}", GetMessageByID, "/messages/not-hex"},
		"edit":   {http.MethodPut, "/messages/edit/{messageId}", EditMessage, "/messages/edit/not-hex"},
		"delete": {http.MethodDelete, "/messages/delete/{messageId}", DeleteMessage, "/messages/delete/not-hex"},
	}

	for name, tt := range handlers {
		t.Run(name, func(t *testing.T) {
			rec := commentRoute(tt.method, tt.pattern, tt.handler, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"missing information"}`, rec.Body.String())
		})
	}
}

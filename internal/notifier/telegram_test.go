package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habitflow/pkg/config"
)

func TestMessage(t *testing.T) {
	got := Message("reading", "08:30", "home")
	assert.Equal(t, "I will be doing reading at 08:30 at home", got)
}

func TestTelegramSend(t *testing.T) {
	var gotPath, gotChatID, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotChatID = r.FormValue("chat_id")
		gotText = r.FormValue("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram(config.TelegramConfig{Token: "secret-token", APIBase: srv.URL}, zap.NewNop())

	status, err := tg.Send(context.Background(), "100200", "I will be doing run at 07:00 at park")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/botsecret-token/sendMessage", gotPath)
	assert.Equal(t, "100200", gotChatID)
	assert.Equal(t, "I will be doing run at 07:00 at park", gotText)
}

func TestTelegramSendReportsGatewayStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tg := NewTelegram(config.TelegramConfig{Token: "x", APIBase: srv.URL}, zap.NewNop())

	status, err := tg.Send(context.Background(), "1", "hi")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestTelegramSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	tg := NewTelegram(config.TelegramConfig{Token: "x", APIBase: srv.URL}, zap.NewNop())

	status, err := tg.Send(context.Background(), "1", "hi")
	require.Error(t, err)
	assert.Equal(t, 0, status)
}

package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sentDocument struct {
	chatID  string
	caption string
	name    string
	body    string
}

func newFakeTelegram(t *testing.T, sent *sentDocument) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Holo","username":"holo_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendDocument"):
			require.NoError(t, r.ParseMultipartForm(1<<20))
			sent.chatID = r.FormValue("chat_id")
			sent.caption = r.FormValue("caption")
			f, hdr, err := r.FormFile("document")
			require.NoError(t, err)
			defer f.Close()
			data, err := io.ReadAll(f)
			require.NoError(t, err)
			sent.name = hdr.Filename
			sent.body = string(data)
			_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`)
		default:
			_, _ = io.WriteString(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTelegramNotifier_Deliver(t *testing.T) {
	var sent sentDocument
	srv := newFakeTelegram(t, &sent)

	n, err := NewTelegramNotifier(TelegramConfig{Token: "T", ChatID: 42, Endpoint: srv.URL + "/bot%s/%s"}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.3 test"), 0o644))

	require.NoError(t, n.Deliver(context.Background(), path, "Report report.pdf (1 pages)"))
	require.Equal(t, "42", sent.chatID)
	require.Equal(t, "Report report.pdf (1 pages)", sent.caption)
	require.Equal(t, "report.pdf", sent.name)
	require.Equal(t, "%PDF-1.3 test", sent.body)
}

func TestNewTelegramNotifier_Validation(t *testing.T) {
	_, err := NewTelegramNotifier(TelegramConfig{ChatID: 1}, nil)
	require.Error(t, err)

	_, err = NewTelegramNotifier(TelegramConfig{Token: "T"}, nil)
	require.Error(t, err)
}

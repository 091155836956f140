package telegraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreatePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/createPage", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "secret", body["access_token"])
		require.Equal(t, "My Article", body["title"])

		content, ok := body["content"].([]any)
		require.True(t, ok)
		require.Len(t, content, 1)
		block, ok := content[0].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "p", block["tag"])
		require.Equal(t, []any{"hello"}, block["children"])

		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": map[string]any{
				"path": "My-Article-01-01",
				"url":  "https://telegra.ph/My-Article-01-01",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.BaseURL = server.URL

	page, err := client.CreatePage(context.Background(), PageParams{
		AccessToken: "secret",
		Title:       "My Article",
		Content:     []Node{elem("p", Text("hello"))},
	})
	require.NoError(t, err)
	require.Equal(t, "https://telegra.ph/My-Article-01-01", page.URL)
}

func TestCreatePageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "ACCESS_TOKEN_INVALID"})
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.BaseURL = server.URL

	_, err := client.CreatePage(context.Background(), PageParams{AccessToken: "bad", Title: "x"})
	require.ErrorContains(t, err, "ACCESS_TOKEN_INVALID")
}

func TestCreateAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/createAccount", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "@user's readeckbot blog", r.PostForm.Get("short_name"))
		require.Equal(t, "@user", r.PostForm.Get("author_name"))

		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": map[string]any{
				"short_name":   "@user's readeckbot blog",
				"author_name":  "@user",
				"access_token": "fresh-token",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.BaseURL = server.URL

	account, err := client.CreateAccount(context.Background(), "@user's readeckbot blog", "@user", "https://t.me/user")
	require.NoError(t, err)
	require.Equal(t, "fresh-token", account.AccessToken)
}

package readeck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice", body["username"])
		require.Equal(t, "telegram bot", body["application"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	token, err := client.Auth(context.Background(), "alice", "s3cret", "telegram bot")
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)
}

func TestSave(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/bookmarks", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "https://example.com/article", body["url"])
		require.Equal(t, "A Title", body["title"])
		require.Equal(t, []any{"go", "news"}, body["labels"])

		w.Header().Set("Bookmark-Id", "BM123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	id, err := client.Save(context.Background(), "tok-123", "https://example.com/article", "A Title", []string{"go", "news"})
	require.NoError(t, err)
	require.Equal(t, "BM123", id)
}

func TestBookmarks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bookmarks", r.URL.Path)
		require.Equal(t, "golang", r.URL.Query().Get("search"))
		require.Equal(t, "false", r.URL.Query().Get("is_archived"))

		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "a1", "title": "One", "url": "https://one.example"},
			{"id": "b2", "title": "Two", "url": "https://two.example"},
		})
	}))
	defer server.Close()

	archived := false
	client := New(server.URL, server.Client())
	bookmarks, err := client.Bookmarks(context.Background(), "tok", ListOptions{Search: "golang", IsArchived: &archived})
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	require.Equal(t, "a1", bookmarks[0].ID)
	require.Equal(t, "Two", bookmarks[1].Title)
}

func TestArchive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/bookmarks/BM123", r.URL.Path)

		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.True(t, body["is_archived"])
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	require.NoError(t, client.Archive(context.Background(), "tok", "BM123"))
}

func TestArticleMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bookmarks/BM123/article.md", r.URL.Path)
		require.Equal(t, "text/markdown", r.Header.Get("Accept"))
		w.Write([]byte("# Title\n\nBody."))
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	md, err := client.ArticleMarkdown(context.Background(), "tok", "BM123")
	require.NoError(t, err)
	require.Equal(t, "# Title\n\nBody.", md)
}

func TestArticleText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bookmarks/BM123/article", r.URL.Path)
		w.Write([]byte(`<html><body>
			<h1>Title</h1>
			<p>First <strong>paragraph</strong>.</p>
			<p>Second paragraph.</p>
		</body></html>`))
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	text, err := client.ArticleText(context.Background(), "tok", "BM123")
	require.NoError(t, err)
	require.Equal(t, "Title\n\nFirst paragraph.\n\nSecond paragraph.", text)
}

func TestUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, server.Client())
	_, err := client.Bookmark(context.Background(), "bad", "BM123")
	require.ErrorContains(t, err, "unexpected status")
}

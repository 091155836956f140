// Package readeck is a client for the Readeck bookmarking API, covering
// the endpoints the bot relays: authentication, saving and listing
// bookmarks, archiving, and the article/epub exports.
package readeck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, client *http.Client) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    client,
	}
}

type Bookmark struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	SiteName   string    `json:"site_name"`
	Authors    []string  `json:"authors"`
	Labels     []string  `json:"labels"`
	Created    time.Time `json:"created"`
	IsArchived bool      `json:"is_archived"`
}

type ListOptions struct {
	Search     string
	Labels     string
	IsArchived *bool
	Limit      int
	Offset     int
}

func (o ListOptions) values() url.Values {
	params := url.Values{}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if o.Labels != "" {
		params.Set("labels", o.Labels)
	}
	if o.IsArchived != nil {
		params.Set("is_archived", strconv.FormatBool(*o.IsArchived))
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		params.Set("offset", strconv.Itoa(o.Offset))
	}
	return params
}

// Auth exchanges a username and password for an API token.
func (c *Client) Auth(ctx context.Context, username, password, application string) (string, error) {
	payload := map[string]string{
		"application": application,
		"username":    username,
		"password":    password,
	}

	res, err := c.do(ctx, http.MethodPost, "/api/auth", "", "application/json", payload)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var data struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("could not parse auth response: %w", err)
	}
	if data.Token == "" {
		return "", fmt.Errorf("auth response carried no token")
	}
	return data.Token, nil
}

// Save submits a URL for bookmarking and returns the new bookmark ID,
// which Readeck reports in the Bookmark-Id response header.
func (c *Client) Save(ctx context.Context, token, link, title string, labels []string) (string, error) {
	payload := map[string]any{"url": link}
	if title != "" {
		payload["title"] = title
	}
	if len(labels) > 0 {
		payload["labels"] = labels
	}

	res, err := c.do(ctx, http.MethodPost, "/api/bookmarks", token, "application/json", payload)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	id := res.Header.Get("Bookmark-Id")
	if id == "" {
		return "", fmt.Errorf("save response carried no bookmark id")
	}
	return id, nil
}

func (c *Client) Bookmark(ctx context.Context, token, id string) (Bookmark, error) {
	res, err := c.do(ctx, http.MethodGet, "/api/bookmarks/"+id, token, "application/json", nil)
	if err != nil {
		return Bookmark{}, err
	}
	defer res.Body.Close()

	var b Bookmark
	if err := json.NewDecoder(res.Body).Decode(&b); err != nil {
		return Bookmark{}, fmt.Errorf("could not parse bookmark: %w", err)
	}
	return b, nil
}

func (c *Client) Bookmarks(ctx context.Context, token string, opts ListOptions) ([]Bookmark, error) {
	path := "/api/bookmarks"
	if params := opts.values().Encode(); params != "" {
		path += "?" + params
	}

	res, err := c.do(ctx, http.MethodGet, path, token, "application/json", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var bookmarks []Bookmark
	if err := json.NewDecoder(res.Body).Decode(&bookmarks); err != nil {
		return nil, fmt.Errorf("could not parse bookmark list: %w", err)
	}
	return bookmarks, nil
}

// Archive marks a bookmark as read.
func (c *Client) Archive(ctx context.Context, token, id string) error {
	payload := map[string]bool{"is_archived": true}
	res, err := c.do(ctx, http.MethodPatch, "/api/bookmarks/"+id, token, "application/json", payload)
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

// ArticleMarkdown fetches the extracted article as markdown.
func (c *Client) ArticleMarkdown(ctx context.Context, token, id string) (string, error) {
	res, err := c.do(ctx, http.MethodGet, "/api/bookmarks/"+id+"/article.md", token, "text/markdown", nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	md, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("could not read article: %w", err)
	}
	return string(md), nil
}

// ArticleText fetches the extracted article as HTML and flattens it to
// plain text, one block element per paragraph.
func (c *Client) ArticleText(ctx context.Context, token, id string) (string, error) {
	res, err := c.do(ctx, http.MethodGet, "/api/bookmarks/"+id+"/article", token, "text/html", nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	document, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("could not parse article: %w", err)
	}

	var parts []string
	document.Find("h1, h2, h3, h4, h5, h6, p, li, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return strings.TrimSpace(document.Text()), nil
	}
	return strings.Join(parts, "\n\n"), nil
}

// ArticleEpub downloads a single bookmark as an epub file.
func (c *Client) ArticleEpub(ctx context.Context, token, id string) ([]byte, error) {
	res, err := c.do(ctx, http.MethodGet, "/api/bookmarks/"+id+"/article.epub", token, "application/epub+zip", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}

// ExportEpub downloads every bookmark matching opts as one epub file.
func (c *Client) ExportEpub(ctx context.Context, token string, opts ListOptions) ([]byte, error) {
	path := "/api/bookmarks/export.epub"
	if params := opts.values().Encode(); params != "" {
		path += "?" + params
	}

	res, err := c.do(ctx, http.MethodGet, path, token, "application/epub+zip", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}

func (c *Client) do(ctx context.Context, method, path, token, accept string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", accept)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not call %s: %w", path, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, fmt.Errorf("%s %s: unexpected status %s", method, path, res.Status)
	}
	return res, nil
}

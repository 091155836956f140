// Package telegraph publishes articles as Telegraph pages. It covers
// the two API calls the bot needs (createAccount and createPage) and
// compiles article markdown into the node tree the API accepts.
package telegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const apiBase = "https://api.telegra.ph"

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(client *http.Client) *Client {
	return &Client{BaseURL: apiBase, HTTP: client}
}

type Account struct {
	ShortName   string `json:"short_name"`
	AuthorName  string `json:"author_name"`
	AuthorURL   string `json:"author_url"`
	AccessToken string `json:"access_token"`
}

type Page struct {
	Path  string `json:"path"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

type PageParams struct {
	AccessToken string `json:"access_token"`
	Title       string `json:"title"`
	Content     []Node `json:"content"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"`
}

// apiResponse is the envelope every Telegraph endpoint responds with.
type apiResponse struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Result json.RawMessage `json:"result"`
}

func (c *Client) CreateAccount(ctx context.Context, shortName, authorName, authorURL string) (Account, error) {
	params := url.Values{}
	params.Set("short_name", shortName)
	params.Set("author_name", authorName)
	params.Set("author_url", authorURL)

	var account Account
	err := c.call(ctx, "/createAccount", "application/x-www-form-urlencoded",
		bytes.NewBufferString(params.Encode()), &account)
	if err != nil {
		return Account{}, err
	}
	return account, nil
}

func (c *Client) CreatePage(ctx context.Context, params PageParams) (Page, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return Page{}, fmt.Errorf("could not encode page: %w", err)
	}

	var page Page
	if err := c.call(ctx, "/createPage", "application/json", bytes.NewReader(body), &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

func (c *Client) call(ctx context.Context, path, contentType string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("could not call %s: %w", path, err)
	}
	defer res.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("could not parse %s response: %w", path, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegraph %s: %s", path, envelope.Error)
	}
	return json.Unmarshal(envelope.Result, result)
}

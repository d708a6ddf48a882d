package notion_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"notionfeed/notion"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryResponse = `{
  "object": "list",
  "results": [
    {
      "object": "page",
      "id": "59833787-2cf9-4fdf-8782-e53db20768a5",
      "created_time": "2024-02-01T00:00:00.000Z",
      "last_edited_time": "2024-02-02T00:00:00.000Z",
      "archived": false,
      "url": "https://www.notion.so/59833787",
      "properties": {
        "Image": {"id": "a", "type": "files", "files": [{"name": "i.png", "type": "external", "external": {"url": "http://x/i.png"}}]},
        "Caption": {"id": "b", "type": "rich_text", "rich_text": [{"type": "text", "plain_text": "Sunset", "href": null}]},
        "Title": {"id": "title", "type": "title", "title": [{"type": "text", "plain_text": "Hello", "href": null}]},
        "Status": {"id": "c", "type": "select", "select": {"id": "1", "name": "Done", "color": "green"}},
        "Date": {"id": "d", "type": "date", "date": {"start": "2024-01-01", "end": null, "time_zone": null}},
        "Tags": {"id": "e", "type": "multi_select", "multi_select": [{"name": "x"}]},
        "Cover": {"id": "f", "type": "files", "files": "http://x/cover.png"},
        "Published": {"id": "g", "type": "date", "date": {"start": 20240101}},
        "Open": {"id": "h", "type": "button", "button": {}}
      }
    }
  ],
  "next_cursor": null,
  "has_more": false
}`

func TestQueryDatabase(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/db-123/query", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, notion.DefaultAPIVersion, r.Header.Get("Notion-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, queryResponse)
	}))
	defer srv.Close()

	client := notion.NewClient("secret", notion.WithBaseURL(srv.URL+"/v1/"))
	resp, err := client.QueryDatabase(context.Background(), "db-123", notion.QueryRequest{PageSize: 60})
	require.NoError(t, err)

	assert.Equal(t, float64(60), gotBody["page_size"])

	require.Len(t, resp.Results, 1)
	page := resp.Results[0]
	assert.Equal(t, "59833787-2cf9-4fdf-8782-e53db20768a5", page.ID)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", page.CreatedTime)

	files, ok := page.Properties.Value("Image").(notion.Files)
	require.True(t, ok)
	assert.Equal(t, "http://x/i.png", files[0].External.URL)

	caption, ok := page.Properties.Value("Caption").(notion.RichText)
	require.True(t, ok)
	assert.Equal(t, "Sunset", caption[0].PlainText)

	title, ok := page.Properties.Value("Title").(notion.Title)
	require.True(t, ok)
	assert.Equal(t, "Hello", title[0].PlainText)

	sel, ok := page.Properties.Value("Status").(notion.Select)
	require.True(t, ok)
	assert.Equal(t, "Done", sel.Option.Name)

	date, ok := page.Properties.Value("Date").(notion.Date)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", date.Range.Start)
	assert.Nil(t, date.Range.End)

	assert.Equal(t, notion.PropertyType("multi_select"), page.Properties["Tags"].Type)
	assert.Nil(t, page.Properties.Value("Tags"))
	assert.Nil(t, page.Properties.Value("Missing"))

	// Unknown types and payloads that do not match the declared type only
	// lose that one property, the rest of the page still decodes.
	assert.Equal(t, notion.FilesProperty, page.Properties["Cover"].Type)
	assert.Nil(t, page.Properties.Value("Cover"))
	assert.Nil(t, page.Properties.Value("Published"))
	assert.Equal(t, notion.PropertyType("button"), page.Properties["Open"].Type)
	assert.Nil(t, page.Properties.Value("Open"))
}

func TestQueryDatabaseAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find database with ID: db-123. Make sure the relevant pages and databases are shared with your integration."}`)
	}))
	defer srv.Close()

	client := notion.NewClient("secret", notion.WithBaseURL(srv.URL))
	_, err := client.QueryDatabase(context.Background(), "db-123", notion.QueryRequest{})
	require.Error(t, err)

	var apiErr *notion.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "object_not_found", apiErr.Code)
	assert.Equal(t, "Could not find database with ID: db-123. Make sure the relevant pages and databases are shared with your integration.", err.Error())
}

func TestQueryDatabaseUndecodableError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	client := notion.NewClient("secret", notion.WithBaseURL(srv.URL))
	_, err := client.QueryDatabase(context.Background(), "db-123", notion.QueryRequest{})
	assert.EqualError(t, err, "notion: request failed with status 502")
}

func TestQueryDatabaseMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "results of the wrong type",
			body:     `{"object":"list","results":"nope"}`,
			expected: "failed to decode response",
		},
		{
			name:     "results missing",
			body:     `{"object":"list"}`,
			expected: "notion: malformed query response: results missing",
		},
		{
			name:     "results null",
			body:     `{"object":"list","results":null}`,
			expected: "notion: malformed query response: results missing",
		},
		{
			name:     "null row",
			body:     `{"object":"list","results":[{"id":"a","created_time":"t"},null]}`,
			expected: "notion: malformed query response: result 1 is null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client := notion.NewClient("secret", notion.WithBaseURL(srv.URL))
			resp, err := client.QueryDatabase(context.Background(), "db-123", notion.QueryRequest{})
			assert.Nil(t, resp)
			assert.ErrorContains(t, err, tt.expected)
		})
	}
}

func TestQueryDatabaseEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"object":"list","results":[],"next_cursor":null,"has_more":false}`)
	}))
	defer srv.Close()

	resp, err := notion.NewClient("secret", notion.WithBaseURL(srv.URL)).
		QueryDatabase(context.Background(), "db-123", notion.QueryRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestQueryDatabaseMissingConfiguration(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := notion.NewClient("", notion.WithBaseURL(srv.URL)).
		QueryDatabase(context.Background(), "db-123", notion.QueryRequest{})
	assert.ErrorIs(t, err, notion.ErrMissingToken)

	_, err = notion.NewClient("secret", notion.WithBaseURL(srv.URL)).
		QueryDatabase(context.Background(), "", notion.QueryRequest{})
	assert.ErrorIs(t, err, notion.ErrMissingDatabaseID)

	assert.False(t, called)
}

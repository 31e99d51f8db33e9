package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfstats/shelfstats/internal/logging"
)

const searchPageHTML = `<!DOCTYPE html>
<html><body>
<div class="searchResultItem">
  <h3><a href="/works/OL27448W/The_Lord_of_the_Rings?edition=foo">The Lord of the Rings</a></h3>
</div>
<div class="searchResultItem">
  <h3><a href="/works/OL893415W/Dune">Dune</a></h3>
</div>
</body></html>`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 0, logging.NewNop())
}

func TestSearchSubject(t *testing.T) {
	t.Run("parses hits and stops on an empty page", func(t *testing.T) {
		var requestedPages []string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Contains(t, r.URL.Query().Get("q"), "science_fiction")
			page := r.URL.Query().Get("page")
			requestedPages = append(requestedPages, page)
			if page == "1" {
				fmt.Fprint(w, searchPageHTML)
				return
			}
			fmt.Fprint(w, "<html><body>no results</body></html>")
		}))

		results, err := client.SearchSubject(context.Background(), "science_fiction", 5)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "The Lord of the Rings", results[0].Title)
		assert.Equal(t, "OL27448W", results[0].WorkKey)
		assert.Equal(t, client.BaseURL()+"/works/OL27448W/The_Lord_of_the_Rings?edition=foo", results[0].URL)
		assert.Equal(t, "OL893415W", results[1].WorkKey)

		// page 2 was empty, page 3 never requested
		assert.Equal(t, []string{"1", "2"}, requestedPages)
	})

	t.Run("failed page is skipped, not fatal", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "1" {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, searchPageHTML)
		}))

		results, err := client.SearchSubject(context.Background(), "science_fiction", 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("list items as fallback selector", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") != "1" {
				fmt.Fprint(w, "<html></html>")
				return
			}
			fmt.Fprint(w, `<html><body><li class="searchResultItem">
				<h3><a href="/works/OL1W/Foundation">Foundation</a></h3>
			</li></body></html>`)
		}))

		results, err := client.SearchSubject(context.Background(), "science_fiction", 2)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Foundation", results[0].Title)
	})
}

func TestWorkKeyFromHref(t *testing.T) {
	assert.Equal(t, "OL27448W", workKeyFromHref("/works/OL27448W/The_Lord_of_the_Rings"))
	assert.Equal(t, "OL27448W", workKeyFromHref("/works/OL27448W?edition=x"))
	assert.Equal(t, "", workKeyFromHref("/books/OL123M"))
}

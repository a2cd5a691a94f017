package courtlistener

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

func TestClient_ListRecent_QueryParameters(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"court":           r.URL.Query().Get("court"),
			"date_filed__gte": r.URL.Query().Get("date_filed__gte"),
			"order_by":        r.URL.Query().Get("order_by"),
			"page_size":       r.URL.Query().Get("page_size"),
		}
		fmt.Fprint(w, emptyListing)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListRecent(context.Background(), 14)
	require.NoError(t, err)

	assert.Equal(t, "scotus", gotQuery["court"])
	assert.Equal(t, "-date_filed", gotQuery["order_by"])
	assert.Equal(t, "20", gotQuery["page_size"])

	cutoff, parseErr := time.Parse(time.DateOnly, gotQuery["date_filed__gte"])
	require.NoError(t, parseErr)
	days := time.Now().UTC().Sub(cutoff).Hours() / 24
	assert.InDelta(t, 14, days, 1.1, "cutoff should be windowDays back from today")
}

func TestClient_ListRecent_FollowsPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "page2" {
			fmt.Fprint(w, `{
				"count": 3,
				"next": null,
				"results": [
					{"id": 103, "absolute_url": "/opinion/103/riley-v-bondi/", "type": "040dissent"}
				]
			}`)
			return
		}
		fmt.Fprintf(w, `{
			"count": 3,
			"next": %q,
			"results": [
				{"id": 101, "case_name": "Louisiana v. Callais", "type": "020lead",
				 "date_filed": "2025-06-27", "author_str": "Thomas",
				 "cluster": "https://www.courtlistener.com/api/rest/v4/clusters/2812209/"},
				{"id": 102, "case_name": "Trump v. CASA, Inc.", "type": "030concurrence"}
			]
		}`, server.URL+"/api/rest/v4/opinions/?cursor=page2")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	opinions, err := client.ListRecent(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, opinions, 3)

	// Listing order survives pagination flattening.
	assert.Equal(t, int64(101), opinions[0].ID)
	assert.Equal(t, int64(102), opinions[1].ID)
	assert.Equal(t, int64(103), opinions[2].ID)

	assert.Equal(t, "Louisiana v. Callais", opinions[0].CaseName)
	assert.Equal(t, domain.OpinionLead, opinions[0].Type)
	assert.Equal(t, "Thomas", opinions[0].Author)
	assert.Equal(t, int64(2812209), opinions[0].ClusterID)
	assert.Equal(t, time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC), opinions[0].DateFiled)

	// Case name recovered from the slug when the record omits it.
	assert.Equal(t, "Riley v. Bondi", opinions[2].CaseName)
	assert.Equal(t, domain.OpinionDissent, opinions[2].Type)
}

func TestClient_ListRecent_EmptyWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, emptyListing)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	opinions, err := client.ListRecent(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, opinions)
}

func TestClient_ListRecent_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Invalid token."}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListRecent(context.Background(), 30)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestClient_GetOpinion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/rest/v4/opinions/9973155/", r.URL.Path)
		fmt.Fprint(w, `{
			"id": 9973155,
			"absolute_url": "/opinion/9973155/free-speech-coalition-inc-v-paxton/",
			"cluster": "https://www.courtlistener.com/api/rest/v4/clusters/2812209/",
			"case_name": "Free Speech Coalition, Inc. v. Paxton",
			"date_filed": "2025-06-27",
			"type": "020lead",
			"author_str": "Thomas",
			"download_url": "https://www.supremecourt.gov/opinions/24pdf/23-1122.pdf",
			"page_count": 47,
			"plain_text": "JUSTICE THOMAS delivered the opinion of the Court."
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	op, err := client.GetOpinion(context.Background(), 9973155)

	require.NoError(t, err)
	assert.Equal(t, int64(9973155), op.ID)
	assert.Equal(t, int64(2812209), op.ClusterID)
	assert.Equal(t, "Free Speech Coalition, Inc. v. Paxton", op.CaseName)
	assert.Equal(t, "Thomas", op.Author)
	assert.Equal(t, domain.OpinionLead, op.Type)
	assert.Equal(t, 47, op.PageCount)
	assert.Equal(t, "https://www.supremecourt.gov/opinions/24pdf/23-1122.pdf", op.DownloadURL)
	assert.Equal(t, server.URL+"/opinion/9973155/free-speech-coalition-inc-v-paxton/", op.URL)
	assert.Equal(t, "JUSTICE THOMAS delivered the opinion of the Court.", op.PlainText)
}

func TestClient_GetOpinion_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Not found."}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetOpinion(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestClient_Validate_ProbesListing(t *testing.T) {
	var gotPath, gotPageSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPageSize = r.URL.Query().Get("page_size")
		fmt.Fprint(w, emptyListing)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	require.NoError(t, client.Validate(context.Background()))

	assert.Equal(t, "/api/rest/v4/opinions/", gotPath)
	assert.Equal(t, "1", gotPageSize)
}

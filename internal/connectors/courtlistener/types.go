package courtlistener

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
)

// listResponse is one page of the opinions listing. Next carries the cursor
// URL for the following page, empty on the last one.
type listResponse struct {
	Count    int           `json:"count"`
	Next     string        `json:"next"`
	Previous string        `json:"previous"`
	Results  []opinionJSON `json:"results"`
}

// opinionJSON is one opinion record as served by the API. Listing entries
// and detail records share this shape; listings often omit the text fields.
type opinionJSON struct {
	ID                int64  `json:"id"`
	AbsoluteURL       string `json:"absolute_url"`
	Cluster           string `json:"cluster"`
	ClusterID         int64  `json:"cluster_id"`
	CaseName          string `json:"case_name"`
	DateFiled         string `json:"date_filed"`
	Type              string `json:"type"`
	AuthorStr         string `json:"author_str"`
	PerCuriam         bool   `json:"per_curiam"`
	Citation          string `json:"citation"`
	PageCount         int    `json:"page_count"`
	DownloadURL       string `json:"download_url"`
	PlainText         string `json:"plain_text"`
	HTML              string `json:"html"`
	HTMLWithCitations string `json:"html_with_citations"`
	HTMLLawbox        string `json:"html_lawbox"`
}

// opinionTypes maps the API's opinion type codes to domain values.
var opinionTypes = map[string]domain.OpinionType{
	"010combined":          domain.OpinionCombined,
	"020lead":              domain.OpinionLead,
	"025plurality":         domain.OpinionPlurality,
	"030concurrence":       domain.OpinionConcurrence,
	"035concurrenceinpart": domain.OpinionConcurrenceInPart,
	"040dissent":           domain.OpinionDissent,
}

// toDomain converts an API record to the domain model. webRoot prefixes
// relative page URLs; it is the scheme and host of the API base URL.
func (o *opinionJSON) toDomain(webRoot string) *domain.Opinion {
	return &domain.Opinion{
		ID:          o.ID,
		ClusterID:   o.clusterID(),
		DateFiled:   parseDate(o.DateFiled),
		CaseName:    o.caseName(),
		Author:      o.author(),
		Type:        opinionType(o.Type),
		Citation:    o.Citation,
		PageCount:   o.PageCount,
		URL:         absoluteURL(webRoot, o.AbsoluteURL),
		DownloadURL: o.DownloadURL,
		PlainText:   o.bestText(),
		PerCuriam:   o.PerCuriam,
	}
}

// clusterID prefers the record's own cluster id and falls back to the
// trailing id of the cluster resource URL.
func (o *opinionJSON) clusterID() int64 {
	if o.ClusterID > 0 {
		return o.ClusterID
	}
	return idFromURL(o.Cluster)
}

// caseName falls back to the URL slug; recent records frequently carry no
// case name on the opinion itself.
func (o *opinionJSON) caseName() string {
	if name := strings.TrimSpace(o.CaseName); name != "" {
		return name
	}
	if name := caseNameFromURL(o.AbsoluteURL); name != "" {
		return name
	}
	return "Unknown Case"
}

// author falls back to "Per Curiam" for unsigned opinions.
func (o *opinionJSON) author() string {
	if author := strings.TrimSpace(o.AuthorStr); author != "" {
		return author
	}
	if o.PerCuriam {
		return "Per Curiam"
	}
	return ""
}

// bestText selects the fullest text body the record offers. Plain text is
// preferred; the HTML variants are stripped down to text.
func (o *opinionJSON) bestText() string {
	if text := strings.TrimSpace(o.PlainText); text != "" {
		return text
	}
	for _, html := range []string{o.HTML, o.HTMLWithCitations, o.HTMLLawbox} {
		if text := htmlToText(html); text != "" {
			return text
		}
	}
	return ""
}

func opinionType(code string) domain.OpinionType {
	if t, ok := opinionTypes[code]; ok {
		return t
	}
	return domain.OpinionType(code)
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// idFromURL extracts the trailing numeric id of a resource URL, for example
// ".../clusters/2812209/". Returns 0 when no id is present.
func idFromURL(resourceURL string) int64 {
	trimmed := strings.Trim(resourceURL, "/")
	if trimmed == "" {
		return 0
	}
	segments := strings.Split(trimmed, "/")
	id, err := strconv.ParseInt(segments[len(segments)-1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// caseNameFromURL recovers a display name from an opinion page URL slug,
// for example "/opinion/9973155/free-speech-coalition-v-paxton/".
func caseNameFromURL(absoluteURL string) string {
	trimmed := strings.Trim(absoluteURL, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	slug := segments[len(segments)-1]
	if slug == "" || allDigits(slug) {
		return ""
	}

	words := strings.Split(slug, "-")
	for i, w := range words {
		switch w {
		case "v", "vs":
			words[i] = "v."
		default:
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, " ")
}

func absoluteURL(webRoot, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return webRoot + path
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

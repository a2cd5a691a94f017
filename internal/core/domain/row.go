package domain

import (
	"fmt"
	"strings"
	"time"
)

// Row is one persisted dataset record: an opinion's metadata joined with its
// classification. Rows are write-once and never mutated after persistence;
// the dataset is append-only.
type Row struct {
	// OpinionID keys the row. The dataset holds at most one row per id, ever.
	OpinionID int64

	ClusterID   int64
	DateFiled   time.Time
	CaseName    string
	Author      string
	Type        OpinionType
	Citation    string
	PageCount   int
	URL         string
	DownloadURL string

	Classification Leaning
	Confidence     Confidence
	Tags           []Tag
	Notes          map[Tag]string
	Summary        string
	Reasoning      string

	// TextLength is the rune length of the text that was actually analyzed,
	// after truncation.
	TextLength int

	// AnalyzedAt is the date the row was produced.
	AnalyzedAt time.Time
}

// NewRow assembles the persisted record for one classified opinion.
func NewRow(op *Opinion, cls *Classification, textLength int, analyzedAt time.Time) *Row {
	return &Row{
		OpinionID:      op.ID,
		ClusterID:      op.ClusterID,
		DateFiled:      op.DateFiled,
		CaseName:       op.CaseName,
		Author:         op.Author,
		Type:           op.Type,
		Citation:       op.Citation,
		PageCount:      op.PageCount,
		URL:            op.URL,
		DownloadURL:    op.DownloadURL,
		Classification: cls.Leaning,
		Confidence:     cls.Confidence,
		Tags:           cls.Tags,
		Notes:          cls.Notes,
		Summary:        cls.Summary,
		Reasoning:      cls.Reasoning,
		TextLength:     textLength,
		AnalyzedAt:     analyzedAt,
	}
}

// CellDelimiter separates entries within the tags and notes dataset cells.
const CellDelimiter = ";"

// TagsCell serializes Tags for the dataset cell.
func (r *Row) TagsCell() string {
	parts := make([]string, len(r.Tags))
	for i, tag := range r.Tags {
		parts[i] = string(tag)
	}
	return strings.Join(parts, CellDelimiter)
}

// NotesCell serializes Notes for the dataset cell, one "<tag> - <explanation>"
// entry per selected tag, in tag order.
func (r *Row) NotesCell() string {
	parts := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		parts = append(parts, fmt.Sprintf("%s - %s", tag, r.Notes[tag]))
	}
	return strings.Join(parts, CellDelimiter)
}

// SplitCell splits a semicolon-delimited dataset cell back into its entries.
// Empty cells yield no entries.
func SplitCell(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, CellDelimiter)
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}

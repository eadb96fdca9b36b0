package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single spaces", input: "My Title Here", expected: "My_Title_Here"},
		{name: "double space collapses", input: "A  B", expected: "A_B"},
		{name: "tabs and newlines", input: "A\t\nB", expected: "A_B"},
		{name: "leading and trailing", input: " A ", expected: "_A_"},
		{name: "no whitespace", input: "Report", expected: "Report"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestStorageKeyFor(t *testing.T) {
	assert.Equal(t, "pdfs/My_Title_Here.pdf", StorageKeyFor("My Title Here"))
	assert.Equal(t, "pdfs/Report.pdf", StorageKeyFor("Report"))
}

func TestNewRenderedDocument(t *testing.T) {
	doc := NewRenderedDocument(7, "Quarterly  Report")

	assert.Equal(t, int64(7), doc.OwnerID)
	assert.Equal(t, "Quarterly  Report", doc.DisplayName)
	assert.Equal(t, "pdfs/Quarterly_Report.pdf", doc.StorageKey)
	assert.Nil(t, doc.Content)
	assert.False(t, doc.UpdatedAt.IsZero())
}

func TestDownloadedDocument_FileName(t *testing.T) {
	d := &DownloadedDocument{DisplayName: "Daily News Summary"}
	assert.Equal(t, "Daily_News_Summary.pdf", d.FileName())
}

func TestRecord_IsAvailable(t *testing.T) {
	var missing *Record
	assert.False(t, missing.IsAvailable())
	assert.True(t, (&Record{ID: 1}).IsAvailable())
	assert.False(t, (&Record{ID: 1, Deleted: true}).IsAvailable())
}

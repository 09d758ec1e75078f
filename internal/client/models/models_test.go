package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dmitrijs2005/legalwriter/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_Validate(t *testing.T) {
	tests := []struct {
		name   string
		doc    NewDocument
		fields []string
	}{
		{"valid", NewDocument{Project: 1, Title: "Brief", Content: "text"}, nil},
		{"missing everything", NewDocument{}, []string{"project", "title", "content"}},
		{"title too long", NewDocument{Project: 1, Title: strings.Repeat("a", 201), Content: "x"}, []string{"title"}},
		{"title at limit", NewDocument{Project: 1, Title: strings.Repeat("é", 200), Content: "x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrValidation)
			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			for _, f := range tt.fields {
				assert.Contains(t, fe, f)
			}
			assert.Len(t, fe, len(tt.fields))
		})
	}
}

func TestFieldErrors_MessageIsSorted(t *testing.T) {
	err := FieldErrors{"title": "bad", "content": "empty"}
	assert.Equal(t, "validation failed: content: empty; title: bad", err.Error())
}

func TestPatches_Validate(t *testing.T) {
	empty := ""
	archived := ProjectArchived
	bogus := ProjectStatus("LOST")

	assert.NoError(t, ProjectPatch{}.Validate())
	assert.NoError(t, ProjectPatch{Status: &archived}.Validate())
	assert.ErrorIs(t, ProjectPatch{Status: &bogus}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, ProjectPatch{Title: &empty}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, DocumentPatch{Content: &empty}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, NotePatch{Content: &empty}.Validate(), common.ErrValidation)
	assert.NoError(t, NotePatch{}.Validate())
}

func TestOtherInputs_Validate(t *testing.T) {
	assert.ErrorIs(t, Credentials{Username: "u"}.Validate(), common.ErrValidation)
	assert.NoError(t, Credentials{Username: "u", Password: "p"}.Validate())
	assert.ErrorIs(t, NewProject{}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, NewNote{Project: 1}.Validate(), common.ErrValidation)
	assert.NoError(t, NewNote{Project: 1, Content: "c"}.Validate())
	assert.ErrorIs(t, NewResource{Project: 1}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, ChatRequest{Project: 1}.Validate(), common.ErrValidation)
}

func TestResourceTypeOf(t *testing.T) {
	assert.Equal(t, ResourcePDF, ResourceTypeOf("Smith v Jones.PDF"))
	assert.Equal(t, ResourceDOC, ResourceTypeOf("memo.docx"))
	assert.Equal(t, ResourceTXT, ResourceTypeOf("notes.txt"))
	assert.Equal(t, ResourceOther, ResourceTypeOf("scan.tiff"))
}

func TestResource_CitationTitle(t *testing.T) {
	assert.Equal(t, "Smith v Jones [2020] UKSC 1", Resource{Title: "Smith v Jones [2020] UKSC 1.pdf"}.CitationTitle())
	assert.Equal(t, "Memo", Resource{Title: "Memo.DOCX"}.CitationTitle())
	assert.Equal(t, "plain", Resource{Title: " plain "}.CitationTitle())
}

func TestResource_DecodesNullableFields(t *testing.T) {
	raw := `{"id":3,"project":1,"title":"Lease","file":"/media/resources/lease.pdf","file_type":"PDF",
		"description":"","file_size":2048,"uploaded_at":"2024-12-06T03:21:00Z",
		"content_extracted":null,"extraction_error":null,"last_extracted":null,
		"summary":"Short","summary_error":null,"last_summarized":"2024-12-07T10:00:00Z"}`

	var r Resource
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, ResourcePDF, r.FileType)
	assert.Nil(t, r.ContentExtracted)
	require.NotNil(t, r.Summary)
	assert.Equal(t, "Short", *r.Summary)
	require.NotNil(t, r.LastSummarized)
	assert.Equal(t, 2024, r.LastSummarized.Year())
}

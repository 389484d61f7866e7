package testutil

import (
	"sort"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"

	"github.com/stretchr/testify/require"
)

// ApplicationDocuments uploads files as the documents of a therapist application, ordered by file name.
// declaredType is the document type the applicant picked, empty to let the store infer it.
func ApplicationDocuments(t *testing.T, declaredType string, files map[string][]byte) []therapists.ApplicationDocument {
	t.Helper()

	form, err := CreateForm(files, "files")
	require.NoError(t, err)

	headers := form.File["files"]
	sort.Slice(headers, func(i, j int) bool {
		return headers[i].Filename < headers[j].Filename
	})

	documents := make([]therapists.ApplicationDocument, 0, len(headers))
	for _, header := range headers {
		documents = append(documents, therapists.ApplicationDocument{File: header, DeclaredType: declaredType})
	}
	return documents
}

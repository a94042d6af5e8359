package specialist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func taskWith(status []Part, artifacts ...[]Part) *Task {
	t := &Task{ID: "t1", Kind: taskKind, ContextID: "ctx"}
	if status != nil {
		t.Status = TaskStatus{State: "completed", Message: &Message{Role: "agent", Parts: status}}
	}
	for _, parts := range artifacts {
		t.Artifacts = append(t.Artifacts, Artifact{Parts: parts})
	}
	return t
}

func TestExtractText_NilTask(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
}

func TestExtractText_StatusSubsumedByArtifact(t *testing.T) {
	task := taskWith(
		[]Part{TextPart("Revenue up 5%")},
		[]Part{TextPart("Revenue up 5%\nGuidance raised")},
	)

	assert.Equal(t, "Revenue up 5%\nGuidance raised", ExtractText(task))
}

func TestExtractText_PartialOverlapKeepsStatus(t *testing.T) {
	task := taskWith(
		[]Part{TextPart("Quick take"), TextPart("Revenue up 5%")},
		[]Part{TextPart("Revenue up 5%\nGuidance raised")},
	)

	// "Quick take" is not contained in the artifact text, so no status block
	// is dropped; line dedup still removes the repeated revenue line.
	assert.Equal(t, "Quick take\n\nRevenue up 5%\n\nGuidance raised", ExtractText(task))
}

func TestExtractText_DuplicateLinesAcrossArtifacts(t *testing.T) {
	task := taskWith(nil,
		[]Part{TextPart("N/A")},
		[]Part{TextPart("N/A")},
	)

	assert.Equal(t, "N/A", ExtractText(task))
}

func TestExtractText_BlankLineCollapse(t *testing.T) {
	task := taskWith(nil, []Part{TextPart("first\n\n\n\nsecond")})

	assert.Equal(t, "first\n\nsecond", ExtractText(task))
}

func TestExtractText_DataAndFileParts(t *testing.T) {
	task := taskWith(nil, []Part{
		{Type: PartTypeData, Data: map[string]any{"eps": 1.5}},
		{Type: PartTypeFile, File: &FileContent{MimeType: "application/pdf"}},
	})

	got := ExtractText(task)
	assert.Contains(t, got, `"eps": 1.5`)
	assert.Contains(t, got, "Received file content (application/pdf).")
}

func TestExtractText_FilePartWithoutMime(t *testing.T) {
	task := taskWith(nil, []Part{{Type: PartTypeFile, File: &FileContent{}}})

	assert.Equal(t, "Received file content (unknown mime type).", ExtractText(task))
}

func TestExtractText_UnknownPartTypeSkipped(t *testing.T) {
	task := taskWith(nil, []Part{
		{Type: "video"},
		TextPart("usable text"),
	})

	assert.Equal(t, "usable text", ExtractText(task))
}

func TestExtractText_StatusOnly(t *testing.T) {
	task := taskWith([]Part{TextPart("Working on it")})

	assert.Equal(t, "Working on it", ExtractText(task))
}

package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAnalysis = `{
  "overallScore": 52,
  "categories": {
    "skillsBreadth": 48,
    "experienceQuality": 40,
    "ratePositioning": 60,
    "marketReadiness": 45
  },
  "strengths": ["Coherent backend stack"],
  "improvements": ["Experience entries lack impact metrics", "No rate ceiling given"],
  "detailedFeedback": "## The Bottom Line\nSolid foundation, thin evidence."
}`

func TestSchemaIsValidJSON(t *testing.T) {
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(profileAnalysisSchema), &v))
}

func TestValidateProfileAnalysis(t *testing.T) {
	assert.NoError(t, ValidateProfileAnalysis(validAnalysis))
}

func TestValidateProfileAnalysisRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing categories", `{"overallScore": 50, "strengths": ["a"], "improvements": ["b"], "detailedFeedback": "c"}`},
		{"score out of range", `{"overallScore": 150, "categories": {"skillsBreadth": 1, "experienceQuality": 1, "ratePositioning": 1, "marketReadiness": 1}, "strengths": ["a"], "improvements": ["b"], "detailedFeedback": "c"}`},
		{"too many strengths", `{"overallScore": 50, "categories": {"skillsBreadth": 1, "experienceQuality": 1, "ratePositioning": 1, "marketReadiness": 1}, "strengths": ["a","b","c","d"], "improvements": ["b"], "detailedFeedback": "c"}`},
		{"empty feedback", `{"overallScore": 50, "categories": {"skillsBreadth": 1, "experienceQuality": 1, "ratePositioning": 1, "marketReadiness": 1}, "strengths": ["a"], "improvements": ["b"], "detailedFeedback": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileAnalysis(tt.doc)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateProfileAnalysisRejectsNonJSON(t *testing.T) {
	err := ValidateProfileAnalysis("not json at all")
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

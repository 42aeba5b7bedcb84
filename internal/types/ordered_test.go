package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered_MarshalKeepsInsertionOrder(t *testing.T) {
	var cats SkillCategories
	cats.Set("tools", []string{"Git"})
	cats.Set("languages", []string{"Python", "Go"})
	cats.Set("cloud", []string{"Docker"})

	data, err := json.Marshal(cats)
	require.NoError(t, err)
	assert.Equal(t, `{"tools":["Git"],"languages":["Python","Go"],"cloud":["Docker"]}`, string(data))
}

func TestOrdered_UnmarshalKeepsDocumentOrder(t *testing.T) {
	var breakdown Ordered[float64]
	err := json.Unmarshal([]byte(`{"keyword_match": 58, "format_score": 80, "action_verbs": 60}`), &breakdown)
	require.NoError(t, err)

	assert.Equal(t, []string{"keyword_match", "format_score", "action_verbs"}, breakdown.Keys())
	v, ok := breakdown.Get("format_score")
	assert.True(t, ok)
	assert.Equal(t, 80.0, v)
}

func TestOrdered_SetReplacesExisting(t *testing.T) {
	var o Ordered[int]
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, o.Keys())
	v, _ := o.Get("a")
	assert.Equal(t, 3, v)
}

func TestOrdered_UnmarshalNull(t *testing.T) {
	o := Ordered[int]{{Key: "x", Value: 1}}
	require.NoError(t, json.Unmarshal([]byte(`null`), &o))
	assert.Nil(t, o)
}

func TestOrdered_UnmarshalRejectsArray(t *testing.T) {
	var o Ordered[int]
	err := json.Unmarshal([]byte(`[1,2]`), &o)
	assert.Error(t, err)
}

func TestOrdered_OmitEmptyInStruct(t *testing.T) {
	score := ATSScore{OverallScore: 10}
	data, err := json.Marshal(score)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "format_checks")
}

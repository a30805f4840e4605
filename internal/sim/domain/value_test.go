package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_AddPromotesScalarToSet(t *testing.T) {
	v := Scalar("a")
	assert.Equal(t, KindScalar, v.Kind())
	assert.Equal(t, 1, v.Len())

	v = v.Add("b")
	assert.Equal(t, KindSet, v.Kind())
	assert.Equal(t, 2, v.Len())
	assert.True(t, v.Contains("a"))
	assert.True(t, v.Contains("b"))
}

func TestValue_AddDuplicateKeepsSetSize(t *testing.T) {
	v := Scalar("a").Add("b").Add("a")
	assert.Equal(t, 2, v.Len())
}

func TestValue_AddSameScalarStaysScalar(t *testing.T) {
	v := Scalar("a").Add("a")
	assert.Equal(t, KindScalar, v.Kind())
	assert.Equal(t, "a", v.ScalarValue())
}

func TestValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Scalar(12345))
	assert.NoError(t, err)
	assert.Equal(t, "12345", string(data))

	data, err = json.Marshal(Scalar("x").Add("y"))
	assert.NoError(t, err)
	var members []string
	assert.NoError(t, json.Unmarshal(data, &members))
	assert.ElementsMatch(t, []string{"x", "y"}, members)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var v Value
	assert.NoError(t, json.Unmarshal([]byte(`"overseer"`), &v))
	assert.Equal(t, KindScalar, v.Kind())
	assert.Equal(t, "overseer", v.ScalarValue())

	assert.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &v))
	assert.Equal(t, KindSet, v.Kind())
	assert.Equal(t, 2, v.Len())

	assert.NoError(t, json.Unmarshal([]byte(`42`), &v))
	assert.Equal(t, KindScalar, v.Kind())
	assert.Equal(t, json.Number("42"), v.ScalarValue())
}

func TestValue_UnmarshalJSONRejectsNesting(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"a":1}`), &v)
	assert.ErrorIs(t, err, ErrNotScalar)

	err = json.Unmarshal([]byte(`["a",{"b":2}]`), &v)
	assert.ErrorIs(t, err, ErrNotScalar)

	err = json.Unmarshal([]byte(`[["a"]]`), &v)
	assert.ErrorIs(t, err, ErrNotScalar)
}

func TestIsMetricsTag(t *testing.T) {
	assert.True(t, IsMetricsTag("metrics:solr.core.c1.shard1.core_node1:INDEX.sizeInBytes"))
	assert.False(t, IsMetricsTag("freedisk"))
	assert.False(t, IsMetricsTag("metric:almost"))
}

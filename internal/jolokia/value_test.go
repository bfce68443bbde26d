package jolokia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return v
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	assert.Equal(t, KindNull, v.Kind())
	assert.True(t, v.IsNull())
	assert.Equal(t, "null", v.Text())
}

func TestValue_DecodeScalars(t *testing.T) {
	assert.Equal(t, KindNumber, decode(t, `42`).Kind())
	assert.Equal(t, "42", decode(t, `42`).Text())
	assert.Equal(t, "3.14", decode(t, `3.14`).Text())
	// Large longs must survive without float rounding.
	assert.Equal(t, "9007199254740993", decode(t, `9007199254740993`).Text())

	assert.Equal(t, KindString, decode(t, `"UP"`).Kind())
	assert.Equal(t, "UP", decode(t, `"UP"`).Text())

	assert.Equal(t, KindBool, decode(t, `true`).Kind())
	assert.Equal(t, "true", decode(t, `true`).Text())

	assert.True(t, decode(t, `null`).IsNull())
}

func TestValue_DecodeMappingKeepsDocumentOrder(t *testing.T) {
	v := decode(t, `{"zeta":1,"alpha":2,"mu":3}`)
	require.Equal(t, KindMapping, v.Kind())

	keys := make([]string, 0, len(v.Entries()))
	for _, e := range v.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, keys)
	assert.Equal(t, "{zeta=1, alpha=2, mu=3}", v.Text())
}

func TestValue_DecodeNested(t *testing.T) {
	v := decode(t, `{"status":"DOWN","diskSpace":{"status":"UP","free":1024},"tags":["a","b"]}`)
	require.Equal(t, KindMapping, v.Kind())

	disk, ok := v.Get("diskSpace")
	require.True(t, ok)
	assert.Equal(t, KindMapping, disk.Kind())
	assert.Equal(t, "{status=UP, free=1024}", disk.Text())

	tags, ok := v.Get("tags")
	require.True(t, ok)
	assert.Equal(t, KindSequence, tags.Kind())
	assert.Equal(t, "[a, b]", tags.Text())

	_, ok = v.Get("nope")
	assert.False(t, ok)
}

func TestValue_DecodeSequence(t *testing.T) {
	v := decode(t, `["UP","UP"]`)
	require.Equal(t, KindSequence, v.Kind())
	require.Len(t, v.Items(), 2)
	assert.Equal(t, "UP", v.Items()[0].Text())
}

func TestValue_DecodeEmptyContainers(t *testing.T) {
	assert.Equal(t, "{}", decode(t, `{}`).Text())
	assert.Equal(t, "[]", decode(t, `[]`).Text())
}

func TestValue_DecodeInvalid(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"unterminated":`), &v))
}

func TestValue_Constructors(t *testing.T) {
	m := MappingValue(
		Entry{Key: "status", Value: StringValue("UP")},
		Entry{Key: "count", Value: NumberValue("7")},
	)
	assert.Equal(t, "{status=UP, count=7}", m.Text())

	s := SequenceValue(BoolValue(false), NumberValue("1"))
	assert.Equal(t, "[false, 1]", s.Text())
}

func TestValue_GetOnNonMapping(t *testing.T) {
	_, ok := StringValue("x").Get("status")
	assert.False(t, ok)
	assert.Nil(t, StringValue("x").Entries())
	assert.Nil(t, StringValue("x").Items())
}

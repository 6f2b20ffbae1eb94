package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{
	"header": {"title": "Channel", "empty": "", "nothing": null},
	"runs": [
		{"text": "a"},
		{"navigationEndpoint": {"browseEndpoint": {"browseId": "UCabc"}}}
	],
	"single": {"text": "one"},
	"counts": {"n": 42, "big": "9007199254740993", "zero": "0", "bad": "x"},
	"flags": {"yes": true, "no": false},
	"tags": ["x", "", "y"]
}`

func mustParse(t *testing.T) Node {
	t.Helper()
	n, err := Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"a":`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Parse(nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGet_MissingIsAbsent(t *testing.T) {
	root := mustParse(t)

	assert.False(t, root.Get("header", "subtitle").Exists())
	assert.False(t, root.Get("nope", "deeper", "still").Exists())
	assert.False(t, root.Get("header", "nothing").Exists())
	assert.False(t, root.Get("header", "title", "beyond").Exists())
	assert.False(t, Missing().Get("x").Exists())
}

func TestGet_DescendsThroughArrays(t *testing.T) {
	root := mustParse(t)

	id, ok := root.Get("runs", "navigationEndpoint", "browseEndpoint", "browseId").String()
	assert.True(t, ok)
	assert.Equal(t, "UCabc", id)

	assert.Equal(t, "a", root.Get("runs", "text").Text())
}

func TestItems(t *testing.T) {
	root := mustParse(t)

	assert.Len(t, root.Get("runs").Items(), 2)
	assert.Len(t, root.Get("single").Items(), 1)
	assert.Nil(t, root.Get("missing").Items())
}

func TestString_EmptyIsAbsent(t *testing.T) {
	root := mustParse(t)

	_, ok := root.Get("header", "empty").String()
	assert.False(t, ok)

	_, ok = root.Get("counts", "n").String()
	assert.False(t, ok)
}

func TestInt(t *testing.T) {
	root := mustParse(t)

	v, ok := root.Get("counts", "n").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)

	v, ok = root.Get("counts", "big").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(9007199254740993), v)

	v, ok = root.Get("counts", "zero").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(0), v)

	_, ok = root.Get("counts", "bad").Int()
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	root := mustParse(t)

	v, ok := root.Get("flags", "yes").Bool()
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = root.Get("flags", "no").Bool()
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = root.Get("flags", "maybe").Bool()
	assert.False(t, ok)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"x", "y"}, mustParse(t).Get("tags").Strings())
}

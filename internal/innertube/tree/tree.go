// Package tree walks decoded upstream responses where nearly every field is
// optional. Lookups never fail: a missing step yields an absent Node and
// accessors report absence through their ok results.
package tree

import (
	"errors"

	"github.com/tidwall/gjson"
)

var ErrMalformed = errors.New("tree: malformed document")

type Node struct {
	r gjson.Result
}

// Parse wraps a JSON document.
func Parse(doc []byte) (Node, error) {
	if !gjson.ValidBytes(doc) {
		return Node{}, ErrMalformed
	}
	return Node{r: gjson.ParseBytes(doc)}, nil
}

// Missing is the absent node.
func Missing() Node {
	return Node{}
}

func (n Node) Exists() bool {
	return n.r.Exists() && n.r.Type != gjson.Null
}

// Get descends one key per argument. When a step lands on an array, the key
// is looked up in each element and the first element carrying it wins, so
// fields that are repeated on the wire read like singular ones.
func (n Node) Get(keys ...string) Node {
	cur := n
	for _, k := range keys {
		cur = cur.child(k)
		if !cur.Exists() {
			return Missing()
		}
	}
	return cur
}

func (n Node) child(key string) Node {
	if !n.Exists() {
		return Missing()
	}
	if n.r.IsArray() {
		for _, el := range n.r.Array() {
			if c := (Node{r: el}).child(key); c.Exists() {
				return c
			}
		}
		return Missing()
	}
	if !n.r.IsObject() {
		return Missing()
	}
	return Node{r: n.r.Get(escape(key))}
}

// Items iterates an array; a present non-array value is a one-item list.
func (n Node) Items() []Node {
	if !n.Exists() {
		return nil
	}
	if !n.r.IsArray() {
		return []Node{n}
	}
	arr := n.r.Array()
	out := make([]Node, 0, len(arr))
	for _, el := range arr {
		out = append(out, Node{r: el})
	}
	return out
}

// String returns a non-empty string value. An empty string counts as absent,
// matching how the binary wire format drops default values.
func (n Node) String() (string, bool) {
	if !n.Exists() || n.r.Type != gjson.String || n.r.Str == "" {
		return "", false
	}
	return n.r.Str, true
}

// Text is String without the ok flag.
func (n Node) Text() string {
	s, _ := n.String()
	return s
}

func (n Node) Bool() (bool, bool) {
	if !n.Exists() {
		return false, false
	}
	switch n.r.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	}
	return false, false
}

// Int accepts JSON numbers and the quoted integers used for 64-bit fields.
func (n Node) Int() (int64, bool) {
	if !n.Exists() {
		return 0, false
	}
	switch n.r.Type {
	case gjson.Number:
		return n.r.Int(), true
	case gjson.String:
		if n.r.Str == "" {
			return 0, false
		}
		v := n.r.Int()
		if v == 0 && n.r.Str != "0" {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// Strings collects every string item of an array, skipping empties.
func (n Node) Strings() []string {
	var out []string
	for _, it := range n.Items() {
		if s, ok := it.String(); ok {
			out = append(out, s)
		}
	}
	return out
}

func (n Node) Raw() string {
	return n.r.Raw
}

func escape(key string) string {
	var buf []byte
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			if buf == nil {
				buf = append(buf, key[:i]...)
			}
			buf = append(buf, '\\')
		}
		if buf != nil {
			buf = append(buf, key[i])
		}
	}
	if buf == nil {
		return key
	}
	return string(buf)
}

package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 249)
	assert.True(t, slicesSorted(all))
	assert.Contains(t, all, "US")
	assert.Contains(t, all, "ZW")
}

func TestCodeFor(t *testing.T) {
	tests := map[string]string{
		"United States":  "US",
		"United Kingdom": "GB",
		"South Korea":    "KR",
		"Germany":        "DE",
		"Türkiye":        "TR",
		"Turkey":         "TR",
	}
	for name, want := range tests {
		got, ok := CodeFor(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := CodeFor("Atlantis")
	assert.False(t, ok)
}

func TestBlocked(t *testing.T) {
	blocked := Blocked(All())
	assert.Empty(t, blocked)

	blocked = Blocked([]string{"US", "XX"})
	assert.Len(t, blocked, 248)
	assert.NotContains(t, blocked, "US")
	assert.True(t, slicesSorted(blocked))

	assert.Len(t, Blocked(nil), 249)
}

func slicesSorted(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

// Package countries maps the country names shown on channel pages to ISO
// 3166-1 alpha-2 codes. The table is embedded and loaded once.
package countries

import (
	_ "embed"
	"encoding/json"
	"slices"
	"sync"
)

//go:embed countries.json
var raw []byte

type table struct {
	byName map[string]string
	codes  []string
}

var load = sync.OnceValue(func() table {
	var byName map[string]string
	if err := json.Unmarshal(raw, &byName); err != nil {
		panic("countries: embedded table is invalid: " + err.Error())
	}

	seen := make(map[string]struct{}, len(byName))
	codes := make([]string, 0, len(byName))
	for _, code := range byName {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	slices.Sort(codes)

	return table{byName: byName, codes: codes}
})

// CodeFor returns the ISO code for a display name such as "United States".
func CodeFor(name string) (string, bool) {
	code, ok := load().byName[name]
	return code, ok
}

// All returns every known ISO code in ascending order.
func All() []string {
	return slices.Clone(load().codes)
}

// Blocked returns the sorted complement of available within All. Codes
// outside the known universe are ignored.
func Blocked(available []string) []string {
	allowed := make(map[string]struct{}, len(available))
	for _, c := range available {
		allowed[c] = struct{}{}
	}

	var blocked []string
	for _, c := range load().codes {
		if _, ok := allowed[c]; !ok {
			blocked = append(blocked, c)
		}
	}
	return blocked
}

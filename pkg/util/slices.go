package util

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SliceToMap turns ["k=v", ...] into a map. Entries without "=" map to an empty value.
func SliceToMap(slice []string) map[string]string {
	return lo.SliceToMap(slice, func(s string) (string, string) {
		k, v, _ := strings.Cut(s, "=")
		return strings.TrimSpace(k), strings.TrimSpace(v)
	})
}

// NumberedList renders names as "1. first\n2. second".
func NumberedList(names []string) string {
	return strings.Join(lo.Map(names, func(name string, i int) string {
		return fmt.Sprintf("%d. %s", i+1, name)
	}), "\n")
}

package ticket

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitID breaks a ticket ID like "A05-02-01" into its area letter and the
// three numeric groups (area group, category, sequence).
func SplitID(id string) (area string, g1, g2, g3 int, ok bool) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || len(parts[0]) < 2 {
		return "", 0, 0, 0, false
	}
	area = parts[0][:1]
	if area[0] < 'A' || area[0] > 'Z' {
		return "", 0, 0, 0, false
	}
	g1, err1 := strconv.Atoi(parts[0][1:])
	g2, err2 := strconv.Atoi(parts[1])
	g3, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", 0, 0, 0, false
	}
	return area, g1, g2, g3, true
}

// Sequential reports whether id follows the sequential numbering rule given
// the set of all parsed IDs in the snapshot. For "A05-02-03" every earlier
// area group (A01..A04), every earlier category within the group (A05-01)
// and every earlier sequence within the category (A05-02-01, A05-02-02)
// must exist somewhere in the set.
func Sequential(id string, all map[string]struct{}) bool {
	area, g1, g2, g3, ok := SplitID(id)
	if !ok {
		return false
	}

	for i := 1; i < g1; i++ {
		if !anyWithPrefix(all, fmt.Sprintf("%s%02d-", area, i)) {
			return false
		}
	}
	for j := 1; j < g2; j++ {
		if !anyWithPrefix(all, fmt.Sprintf("%s%02d-%02d-", area, g1, j)) {
			return false
		}
	}
	for k := 1; k < g3; k++ {
		if _, exists := all[fmt.Sprintf("%s%02d-%02d-%02d", area, g1, g2, k)]; !exists {
			return false
		}
	}
	return true
}

func anyWithPrefix(all map[string]struct{}, prefix string) bool {
	for id := range all {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

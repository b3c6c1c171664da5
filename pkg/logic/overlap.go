package logic

import (
	"slices"
	"strings"
)

// Overlap is the result of a set comparison between two ingredient lists.
// Each slice is sorted.
type Overlap struct {
	Common    []string `json:"common"`
	UniqueToA []string `json:"unique_to_a"`
	UniqueToB []string `json:"unique_to_b"`
}

// IngredientOverlap compares two lists case-insensitively after trimming
// whitespace. Duplicates within a list collapse and blank items are dropped.
func IngredientOverlap(listA, listB []string) Overlap {
	setA := normalize(listA)
	setB := normalize(listB)

	out := Overlap{
		Common:    []string{},
		UniqueToA: []string{},
		UniqueToB: []string{},
	}
	for item := range setA {
		if _, ok := setB[item]; ok {
			out.Common = append(out.Common, item)
		} else {
			out.UniqueToA = append(out.UniqueToA, item)
		}
	}
	for item := range setB {
		if _, ok := setA[item]; !ok {
			out.UniqueToB = append(out.UniqueToB, item)
		}
	}
	slices.Sort(out.Common)
	slices.Sort(out.UniqueToA)
	slices.Sort(out.UniqueToB)
	return out
}

func normalize(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if key := strings.ToLower(strings.TrimSpace(item)); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

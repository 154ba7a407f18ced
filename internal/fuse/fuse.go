// Package fuse merges partial district records from multiple source
// providers into one canonical record per normalized name.
package fuse

import (
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// Key returns the dedup key for a district name: Unicode NFKC, lowercased,
// leading/trailing whitespace trimmed and inner runs collapsed to one space.
// Names that differ beyond case and whitespace ("Frisco ISD" vs "Frisco
// Independent School District") produce distinct keys; cross-source identity
// resolution stops at exact key match.
func Key(name string) string {
	n := norm.NFKC.String(name)
	return strings.ToLower(strings.Join(strings.Fields(n), " "))
}

// Merge fuses provider result lists into a map from dedup key to one
// canonical record. Lists are processed in priority order: the first list is
// the most authoritative. An unseen key inserts the record as-is; a seen key
// merges field-by-field, where a field already populated on the existing
// record is kept and only empty/zero fields take the new source's value.
// Source tags are unioned regardless of field outcomes.
//
// Merge is pure: inputs are never mutated, and fusing the same sequence
// twice yields the same result as fusing it once.
func Merge(lists ...[]district.District) map[string]*district.District {
	out := make(map[string]*district.District)
	for _, list := range lists {
		for i := range list {
			key := Key(list[i].Name)
			if key == "" {
				continue
			}
			existing, ok := out[key]
			if !ok {
				d := list[i]
				d.Sources = append([]string(nil), list[i].Sources...)
				out[key] = &d
				continue
			}
			fill(existing, &list[i])
		}
	}
	return out
}

// Records flattens a fused map into a slice ordered by enrollment descending,
// then name, matching the directory output order.
func Records(fused map[string]*district.District) []district.District {
	out := make([]district.District, 0, len(fused))
	for _, d := range fused {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Enrollment != out[j].Enrollment {
			return out[i].Enrollment > out[j].Enrollment
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// fill copies src fields onto dst where dst is empty/zero. First writer wins
// per field; later sources only fill gaps.
func fill(dst, src *district.District) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Slug == "" {
		dst.Slug = src.Slug
	}
	if dst.Domain == "" {
		dst.Domain = src.Domain
	}
	if dst.Website == "" {
		dst.Website = src.Website
	}
	if dst.City == "" {
		dst.City = src.City
	}
	if dst.State == "" {
		dst.State = src.State
	}
	if dst.Enrollment == 0 {
		dst.Enrollment = src.Enrollment
	}
	if dst.TribuneURL == "" {
		dst.TribuneURL = src.TribuneURL
	}
	if dst.WikipediaURL == "" {
		dst.WikipediaURL = src.WikipediaURL
	}
	for _, tag := range src.Sources {
		dst.AddSource(tag)
	}
}

// LogNearDuplicates counts key pairs that collapse to the same string once
// common district suffixes are expanded. Differently-formatted names for the
// same district from different sources are a known limitation: they stay
// separate records. This only surfaces the count for operators.
func LogNearDuplicates(fused map[string]*district.District) {
	seen := make(map[string]string, len(fused))
	var pairs int
	for key := range fused {
		folded := strings.ReplaceAll(key, "independent school district", "isd")
		folded = strings.ReplaceAll(folded, "consolidated isd", "cisd")
		if other, ok := seen[folded]; ok && other != key {
			pairs++
			zap.L().Debug("fuse: possible duplicate districts left unmerged",
				zap.String("a", other),
				zap.String("b", key),
			)
		}
		seen[folded] = key
	}
	if pairs > 0 {
		zap.L().Info("fuse: near-duplicate names detected, not merged", zap.Int("pairs", pairs))
	}
}

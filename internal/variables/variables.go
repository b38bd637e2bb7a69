// Package variables maps raw protagonist attributes onto the coarse
// buckets used for cache-key derivation and text substitution. Bucketing is
// deterministic and total: every valid protagonist maps to exactly one
// (gender, age) bucket pair.
package variables

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"oraculus/internal/model"
)

// GenderBucket is a coarse gender category.
type GenderBucket string

// AgeBucket is a coarse age category.
type AgeBucket string

const (
	GenderMale   GenderBucket = "male"
	GenderFemale GenderBucket = "female"
	GenderOther  GenderBucket = "other"

	AgeYoung      AgeBucket = "young"       // 16..25
	AgeAdult      AgeBucket = "adult"       // 26..40
	AgeMiddleAged AgeBucket = "middle_aged" // 41..60
	AgeElder      AgeBucket = "elder"       // 61..
)

// BucketAge converts a specific age to its age bucket.
func BucketAge(age int) AgeBucket {
	switch {
	case age >= 16 && age <= 25:
		return AgeYoung
	case age >= 26 && age <= 40:
		return AgeAdult
	case age >= 41 && age <= 60:
		return AgeMiddleAged
	default:
		return AgeElder
	}
}

// BucketGender converts free-text gender to its bucket. The match on
// "male"/"female" is case-insensitive; everything else is "other".
func BucketGender(gender string) GenderBucket {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderOther
	}
}

// Bucket returns both buckets for a protagonist.
func Bucket(p model.Protagonist) (GenderBucket, AgeBucket) {
	return BucketGender(p.Gender), BucketAge(p.Age)
}

// CacheKey combines a node ID with both buckets. Two protagonists that
// differ only within the same buckets collide onto the same entry; that
// collision is the intended compression of the choice cache.
func CacheKey(nodeID string, p model.Protagonist) string {
	gender, age := Bucket(p)
	return fmt.Sprintf("%s_%s_%s", nodeID, gender, age)
}

// SubstitutionMap exposes every raw and bucketed protagonist field under
// its documented variable name for template resolution.
func SubstitutionMap(p model.Protagonist) map[string]string {
	gender, age := Bucket(p)
	return map[string]string{
		"name":          p.Name,
		"gender":        p.Gender,
		"age":           strconv.Itoa(p.Age),
		"age_bucket":    string(age),
		"gender_bucket": string(gender),
		"situation":     p.StartingSituation,
	}
}

// Resolve replaces {var} and $var placeholders in text using the given
// variable mapping. Unknown placeholders are left untouched. Names are
// substituted longest first: the bare $var form has no terminator, so
// $age must never be applied while $age_bucket is still unresolved.
func Resolve(text string, vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	resolved := text
	for _, name := range names {
		resolved = strings.ReplaceAll(resolved, "{"+name+"}", vars[name])
		resolved = strings.ReplaceAll(resolved, "$"+name, vars[name])
	}
	return resolved
}

// ResolveForProtagonist resolves placeholders directly from a protagonist.
func ResolveForProtagonist(text string, p model.Protagonist) string {
	return Resolve(text, SubstitutionMap(p))
}

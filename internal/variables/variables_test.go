package variables_test

import (
	"fmt"
	"testing"

	"oraculus/internal/model"
	"oraculus/internal/variables"

	"github.com/stretchr/testify/assert"
)

func TestBucketAge(t *testing.T) {
	cases := []struct {
		age  int
		want variables.AgeBucket
	}{
		{16, variables.AgeYoung},
		{25, variables.AgeYoung},
		{26, variables.AgeAdult},
		{40, variables.AgeAdult},
		{41, variables.AgeMiddleAged},
		{60, variables.AgeMiddleAged},
		{61, variables.AgeElder},
		{100, variables.AgeElder},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, variables.BucketAge(c.age), "age %d", c.age)
	}
}

func TestBucketTotality(t *testing.T) {
	// Every age in the supported range and any gender string must land in
	// exactly one of the 4x3 bucket combinations, stably across calls.
	genders := []string{"male", "Female", "MALE", "non-binary", "", "dragon"}
	valid := map[variables.AgeBucket]bool{
		variables.AgeYoung: true, variables.AgeAdult: true,
		variables.AgeMiddleAged: true, variables.AgeElder: true,
	}
	for age := 16; age <= 100; age++ {
		for _, g := range genders {
			p := model.Protagonist{Name: "T", Gender: g, Age: age}
			gb, ab := variables.Bucket(p)
			assert.True(t, valid[ab], "age %d produced unknown bucket %q", age, ab)
			assert.Contains(t, []variables.GenderBucket{
				variables.GenderMale, variables.GenderFemale, variables.GenderOther,
			}, gb)

			gb2, ab2 := variables.Bucket(p)
			assert.Equal(t, gb, gb2)
			assert.Equal(t, ab, ab2)
		}
	}
}

func TestCacheKeyCollisionByDesign(t *testing.T) {
	// Protagonists differing only in exact age within one bucket and in
	// the spelling of the same gender must share a cache key.
	a := model.Protagonist{Name: "Anna", Gender: "Female", Age: 27}
	b := model.Protagonist{Name: "Boris", Gender: "female", Age: 39}
	assert.Equal(t, variables.CacheKey("dark_path", a), variables.CacheKey("dark_path", b))

	c := model.Protagonist{Name: "Clio", Gender: "female", Age: 41}
	assert.NotEqual(t, variables.CacheKey("dark_path", a), variables.CacheKey("dark_path", c))
}

func TestSubstitutionMap(t *testing.T) {
	p := model.Protagonist{Name: "Mira", Gender: "female", Age: 30, StartingSituation: "a wandering scholar"}
	vars := variables.SubstitutionMap(p)
	assert.Equal(t, "Mira", vars["name"])
	assert.Equal(t, "30", vars["age"])
	assert.Equal(t, "adult", vars["age_bucket"])
	assert.Equal(t, "female", vars["gender_bucket"])
	assert.Equal(t, "a wandering scholar", vars["situation"])
}

func TestResolveBothPlaceholderForms(t *testing.T) {
	p := model.Protagonist{Name: "Mira", Gender: "female", Age: 30, StartingSituation: "a scholar"}
	text := "You are {name}, $age_bucket and {gender_bucket}. Unknown: {hat}."
	got := variables.ResolveForProtagonist(text, p)
	assert.Equal(t, "You are Mira, adult and female. Unknown: {hat}.", got)
}

func TestResolvePrefixedNamesStable(t *testing.T) {
	// $age is a prefix of $age_bucket and $gender of $gender_bucket; the
	// longer name must win, and the result must not vary across calls.
	p := model.Protagonist{Name: "Mira", Gender: "female", Age: 30, StartingSituation: "a scholar"}
	text := "$age_bucket $gender_bucket $age $gender"
	want := "adult female 30 female"
	for i := 0; i < 200; i++ {
		assert.Equal(t, want, variables.ResolveForProtagonist(text, p))
	}
}

func ExampleCacheKey() {
	p := model.Protagonist{Name: "Mira", Gender: "female", Age: 30}
	fmt.Println(variables.CacheKey("start", p))
	// Output: start_female_adult
}

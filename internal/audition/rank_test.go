package audition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audition-directory-api/internal/models"
)

func TestRankKeyTiers(t *testing.T) {
	cases := []struct {
		name     string
		deadline models.Deadline
		schedule models.Schedule
		tier     Tier
		at       time.Time
		none     bool
	}{
		{name: "open fixed deadline keys on deadline", deadline: fixed(day(2025, 6, 10)), schedule: single(day(2025, 6, 20)), tier: TierDated, at: day(2025, 6, 10)},
		{name: "open fixed deadline with past sessions still ranks", deadline: fixed(day(2025, 6, 10)), schedule: single(day(2025, 5, 20)), tier: TierDated, at: day(2025, 6, 10)},
		{name: "no deadline keys on earliest future session", schedule: various(dayPtr(2025, 7, 9), dayPtr(2025, 5, 1), dayPtr(2025, 6, 15)), tier: TierDated, at: day(2025, 6, 15)},
		{name: "asap with future session", deadline: asap, schedule: single(day(2025, 6, 2)), tier: TierAsap, at: day(2025, 6, 2)},
		{name: "asap to be arranged keys on today", deadline: asap, schedule: tba, tier: TierAsap, at: day(2025, 6, 1)},
		{name: "always open with future session", deadline: alwaysOpen, schedule: various(dayPtr(2025, 8, 1)), tier: TierAlwaysOpen, at: day(2025, 8, 1)},
		{name: "always open to be arranged", deadline: alwaysOpen, schedule: tba, tier: TierAlwaysOpen, at: day(2025, 6, 1)},
		{name: "no deadline to be arranged ranks as rolling", schedule: tba, tier: TierAlwaysOpen, at: day(2025, 6, 1)},
		{name: "passed deadline with future session", deadline: fixed(day(2025, 5, 1)), schedule: various(dayPtr(2025, 6, 9), dayPtr(2025, 6, 4)), tier: TierLate, at: day(2025, 6, 4)},
		{name: "passed deadline to be arranged", deadline: fixed(day(2025, 1, 1)), schedule: tba, none: true},
		{name: "passed deadline past session", deadline: fixed(day(2025, 5, 1)), schedule: single(day(2025, 5, 2)), none: true},
		{name: "passed deadline no schedule", deadline: fixed(day(2025, 5, 1)), none: true},
		{name: "asap with only past sessions", deadline: asap, schedule: single(day(2025, 5, 2)), none: true},
		{name: "asap without schedule", deadline: asap, none: true},
		{name: "always open without schedule", deadline: alwaysOpen, none: true},
		{name: "no deadline past session", schedule: single(day(2025, 5, 2)), none: true},
		{name: "nothing at all", none: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, ok := RankKey(models.Audition{Deadline: tc.deadline, Schedule: tc.schedule}, today)
			if tc.none {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.tier, key.Tier)
			assert.True(t, tc.at.Equal(key.At), "want %s got %s", tc.at, key.At)
		})
	}
}

func TestRankKeyAsapExample(t *testing.T) {
	a := models.Audition{Deadline: asap, Schedule: single(day(2025, 6, 2))}

	status, ok := Classify(a, today)
	require.True(t, ok)
	assert.Equal(t, CategoryOpenCall, status.Category)

	key, ok := RankKey(a, today)
	require.True(t, ok)
	assert.Equal(t, TierAsap, key.Tier)
	assert.Equal(t, int64(2)*BucketSize+day(2025, 6, 2).UnixMilli(), key.Int64())
}

func TestRankKeyClosedExample(t *testing.T) {
	a := models.Audition{Deadline: fixed(day(2025, 1, 1)), Schedule: tba}

	status, ok := Classify(a, today)
	require.True(t, ok)
	assert.Equal(t, CategoryClosed, status.Category)

	_, ok = RankKey(a, today)
	assert.False(t, ok)
}

func TestRankKeyMonotonicInDeadline(t *testing.T) {
	var previous Key
	for i := 0; i < 30; i++ {
		a := models.Audition{Deadline: fixed(day(2025, 6, 1).AddDate(0, 0, i*7))}
		key, ok := RankKey(a, today)
		require.True(t, ok)
		if i > 0 {
			assert.False(t, key.Less(previous))
			assert.GreaterOrEqual(t, key.Int64(), previous.Int64())
		}
		previous = key
	}
}

func TestTierDominatesDate(t *testing.T) {
	farDated, ok := RankKey(models.Audition{Deadline: fixed(day(2099, 12, 31))}, today)
	require.True(t, ok)
	soonLate, ok := RankKey(models.Audition{Deadline: fixed(day(2025, 5, 1)), Schedule: single(day(2025, 6, 1))}, today)
	require.True(t, ok)

	assert.True(t, farDated.Less(soonLate))
	assert.Less(t, farDated.Int64(), soonLate.Int64())
}

func TestKeyCompare(t *testing.T) {
	a := Key{Tier: TierDated, At: day(2025, 6, 1)}
	b := Key{Tier: TierDated, At: day(2025, 6, 2)}
	c := Key{Tier: TierAsap, At: day(2025, 1, 1)}

	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, b.Compare(c))
	assert.Equal(t, 1, c.Compare(a))
}

func TestRankKeyIsIdempotent(t *testing.T) {
	a := models.Audition{Deadline: alwaysOpen, Schedule: tba}
	first, okFirst := RankKey(a, today)
	second, okSecond := RankKey(a, today)
	assert.Equal(t, okFirst, okSecond)
	assert.Equal(t, first, second)
}

func company(name string, auditions ...models.Audition) models.Company {
	return models.Company{ID: name, Name: name, Auditions: auditions}
}

func TestRankKeyForCompanyPicksMinimum(t *testing.T) {
	dated := models.Audition{Deadline: fixed(day(2025, 7, 1))}
	late := models.Audition{Deadline: fixed(day(2025, 5, 1)), Schedule: single(day(2025, 8, 1))}
	excluded := models.Audition{Deadline: fixed(day(2025, 1, 1)), Schedule: tba}

	key, ok := RankKeyForCompany(company("acme", late, excluded, dated), today)
	require.True(t, ok)
	want, _ := RankKey(dated, today)
	assert.Equal(t, want, key)
	assert.Equal(t, TierDated, key.Tier)

	_, ok = RankKeyForCompany(company("empty"), today)
	assert.False(t, ok)
	_, ok = RankKeyForCompany(company("stale", excluded), today)
	assert.False(t, ok)
}

func TestCompareCompanies(t *testing.T) {
	soon := company("soon", models.Audition{Deadline: fixed(day(2025, 6, 5))})
	later := company("later", models.Audition{Deadline: asap, Schedule: tba})
	none1 := company("none1")
	none2 := company("none2", models.Audition{Deadline: fixed(day(2025, 1, 1))})

	assert.Equal(t, 0, CompareCompanies(soon, soon, today))
	assert.Equal(t, -1, CompareCompanies(soon, later, today))
	assert.Equal(t, 1, CompareCompanies(later, soon, today))
	assert.Equal(t, -1, CompareCompanies(later, none1, today))
	assert.Equal(t, 1, CompareCompanies(none1, later, today))
	assert.Equal(t, 0, CompareCompanies(none1, none2, today))

	all := []models.Company{soon, later, none1, none2}
	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				if CompareCompanies(a, b, today) <= 0 && CompareCompanies(b, c, today) <= 0 {
					assert.LessOrEqual(t, CompareCompanies(a, c, today), 0, "%s %s %s", a.Name, b.Name, c.Name)
				}
			}
		}
	}
}

func TestSortCompaniesIsStable(t *testing.T) {
	input := []models.Company{
		company("alpha"),
		company("bravo", models.Audition{Deadline: alwaysOpen, Schedule: tba}),
		company("charlie", models.Audition{Deadline: fixed(day(2025, 6, 20))}),
		company("delta", models.Audition{Deadline: fixed(day(2025, 1, 1))}),
		company("echo", models.Audition{Deadline: alwaysOpen, Schedule: tba}),
		company("foxtrot", models.Audition{Schedule: single(day(2025, 6, 3))}),
	}

	sorted := SortCompanies(input, today)

	names := make([]string, len(sorted))
	for i, c := range sorted {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"foxtrot", "charlie", "bravo", "echo", "alpha", "delta"}, names)
	assert.Equal(t, "alpha", input[0].Name, "input must not be reordered")
}

func TestFilterUpcoming(t *testing.T) {
	input := []models.Company{
		company("alpha"),
		company("bravo", models.Audition{Deadline: asap, Schedule: single(day(2025, 6, 9))}),
		company("charlie", models.Audition{Deadline: fixed(day(2025, 1, 1)), Schedule: tba}),
		company("delta", models.Audition{Schedule: tba}),
	}

	filtered := FilterUpcoming(input, today)

	require.Len(t, filtered, 2)
	assert.Equal(t, "bravo", filtered[0].Name)
	assert.Equal(t, "delta", filtered[1].Name)
}

func TestFilterRanked(t *testing.T) {
	ranked := Rank([]models.Company{
		company("alpha"),
		company("bravo", models.Audition{Deadline: asap, Schedule: single(day(2025, 6, 9))}),
		company("charlie", models.Audition{Deadline: fixed(day(2025, 1, 1)), Schedule: tba}),
		company("delta", models.Audition{Schedule: tba}),
	}, today)

	filtered := FilterRanked(ranked)

	require.Len(t, filtered, 2)
	assert.Equal(t, "bravo", filtered[0].Company.Name)
	assert.Equal(t, TierAsap, filtered[0].Key.Tier)
	assert.Equal(t, "delta", filtered[1].Company.Name)
	assert.Empty(t, FilterRanked(nil))
}

func TestKeyInt64AgreesWithCompareInRange(t *testing.T) {
	keys := []Key{
		{Tier: TierDated, At: day(1970, 1, 1)},
		{Tier: TierDated, At: day(2286, 11, 20)},
		{Tier: TierAsap, At: day(1970, 1, 2)},
		{Tier: TierAsap, At: day(2025, 6, 2)},
		{Tier: TierAlwaysOpen, At: day(2286, 11, 1)},
		{Tier: TierLate, At: day(1970, 1, 1)},
	}
	for i := range keys {
		for j := range keys {
			byInt := 0
			switch a, b := keys[i].Int64(), keys[j].Int64(); {
			case a < b:
				byInt = -1
			case a > b:
				byInt = 1
			}
			assert.Equal(t, keys[i].Compare(keys[j]), byInt, "%v vs %v", keys[i], keys[j])
		}
	}

	beyond := Key{Tier: TierDated, At: day(2400, 1, 1)}
	assert.Equal(t, -1, beyond.Compare(keys[3]))
	assert.Greater(t, beyond.Int64(), keys[3].Int64())
}

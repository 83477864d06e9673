package audition

import (
	"sort"
	"time"

	"github.com/noah-isme/audition-directory-api/internal/models"
)

// Tier is a priority bucket of the upcoming ranking; lower sorts first.
type Tier int

const (
	// TierDated holds open fixed deadlines and deadline-less auditions with a future session.
	TierDated Tier = 1
	// TierAsap holds "apply as soon as possible" calls that still have something ahead.
	TierAsap Tier = 2
	// TierAlwaysOpen holds rolling calls that still have something ahead.
	TierAlwaysOpen Tier = 3
	// TierLate holds auditions past their deadline with a session still ahead.
	TierLate Tier = 4
)

// BucketSize separates tiers in the single-integer encoding of a Key. The
// encoding agrees with Compare only while 0 <= UnixMilli < BucketSize, that is
// for dates from 1970-01-01 through 2286-11-20. Ordering always goes through
// Compare; the integer is informational.
const BucketSize int64 = 10_000_000_000_000

// Key orders auditions by tier first and date second.
type Key struct {
	Tier Tier      `json:"tier"`
	At   time.Time `json:"at"`
}

// Compare returns -1, 0 or 1 as k sorts before, with or after other.
func (k Key) Compare(other Key) int {
	switch {
	case k.Tier < other.Tier:
		return -1
	case k.Tier > other.Tier:
		return 1
	case k.At.Before(other.At):
		return -1
	case k.At.After(other.At):
		return 1
	default:
		return 0
	}
}

// Less reports whether k sorts strictly before other.
func (k Key) Less(other Key) bool {
	return k.Compare(other) < 0
}

// Int64 encodes the key as tier*BucketSize + milliseconds since epoch.
// Ascending integer order matches Compare.
func (k Key) Int64() int64 {
	return int64(k.Tier)*BucketSize + k.At.UnixMilli()
}

// RankKey computes the upcoming-ranking key of a. The boolean is false when
// the audition is excluded from the upcoming view.
func RankKey(a models.Audition, today time.Time) (Key, bool) {
	return rank(newFacts(a, DateOf(today)))
}

func rank(f facts) (Key, bool) {
	switch f.deadlineMode {
	case models.DeadlineModeFixedDate:
		if !f.deadlinePassed {
			return Key{Tier: TierDated, At: f.deadline}, true
		}
		if f.hasFutureAudition {
			return Key{Tier: TierLate, At: f.earliestFuture}, true
		}
		return Key{}, false
	case models.DeadlineModeAsap:
		return openEnded(f, TierAsap)
	case models.DeadlineModeAlwaysOpen:
		return openEnded(f, TierAlwaysOpen)
	default:
		if f.hasFutureAudition {
			return Key{Tier: TierDated, At: f.earliestFuture}, true
		}
		if f.toBeArranged {
			// No deadline and no dates yet behaves like a rolling call.
			return Key{Tier: TierAlwaysOpen, At: f.today}, true
		}
		return Key{}, false
	}
}

func openEnded(f facts, tier Tier) (Key, bool) {
	switch {
	case f.hasFutureAudition:
		return Key{Tier: tier, At: f.earliestFuture}, true
	case f.toBeArranged:
		return Key{Tier: tier, At: f.today}, true
	default:
		return Key{}, false
	}
}

// RankKeyForCompany returns the smallest key among c's auditions, or false
// when none of them qualifies.
func RankKeyForCompany(c models.Company, today time.Time) (Key, bool) {
	var (
		best  Key
		found bool
	)
	for _, a := range c.Auditions {
		key, ok := RankKey(a, today)
		if !ok {
			continue
		}
		if !found || key.Less(best) {
			best = key
			found = true
		}
	}
	return best, found
}

// CompareCompanies orders two companies by their company rank key. Companies
// without a key sort after every company that has one and tie with each other.
func CompareCompanies(a, b models.Company, today time.Time) int {
	ka, okA := RankKeyForCompany(a, today)
	kb, okB := RankKeyForCompany(b, today)
	return compareOptional(ka, okA, kb, okB)
}

func compareOptional(a Key, okA bool, b Key, okB bool) int {
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	default:
		return a.Compare(b)
	}
}

// Ranked pairs a company with its precomputed rank key.
type Ranked struct {
	Company models.Company
	Key     Key
	HasKey  bool
}

// Rank computes every company's key once, in input order.
func Rank(companies []models.Company, today time.Time) []Ranked {
	ranked := make([]Ranked, len(companies))
	for i, c := range companies {
		key, ok := RankKeyForCompany(c, today)
		ranked[i] = Ranked{Company: c, Key: key, HasKey: ok}
	}
	return ranked
}

// SortRanked stable-sorts ranked entries by key, keeping input order among ties.
func SortRanked(ranked []Ranked) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return compareOptional(ranked[i].Key, ranked[i].HasKey, ranked[j].Key, ranked[j].HasKey) < 0
	})
}

// FilterRanked keeps the entries that have a rank key, in input order. The
// result shares the backing array of ranked.
func FilterRanked(ranked []Ranked) []Ranked {
	filtered := ranked[:0]
	for _, r := range ranked {
		if r.HasKey {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SortCompanies returns companies ordered by CompareCompanies. The sort is
// stable, so an existing secondary order survives among equal keys.
func SortCompanies(companies []models.Company, today time.Time) []models.Company {
	ranked := Rank(companies, today)
	SortRanked(ranked)
	sorted := make([]models.Company, len(ranked))
	for i, r := range ranked {
		sorted[i] = r.Company
	}
	return sorted
}

// FilterUpcoming keeps the companies that have a rank key, in input order.
func FilterUpcoming(companies []models.Company, today time.Time) []models.Company {
	ranked := FilterRanked(Rank(companies, today))
	filtered := make([]models.Company, len(ranked))
	for i, r := range ranked {
		filtered[i] = r.Company
	}
	return filtered
}

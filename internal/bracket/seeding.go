package bracket

import (
	"math/rand"
	"sort"

	"github.com/goserg/ratingengine/internal/domain"
)

// nextPowerOfTwo returns the smallest power of two >= n, n >= 1.
func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func log2(size int) int {
	rounds := 0
	for size > 1 {
		size >>= 1
		rounds++
	}
	return rounds
}

// seedOrder returns the seed placed at every first round slot, so that seed 1 meets seed size,
// seed 2 meets seed size-1 and the top two seeds can only meet in the final.
// For 8 slots: 1 8 4 5 2 7 3 6.
func seedOrder(size int) []int {
	seeds := []int{1}
	for len(seeds) < size {
		m := 2*len(seeds) + 1
		next := make([]int, 0, 2*len(seeds))
		for _, s := range seeds {
			next = append(next, s, m-s)
		}
		seeds = next
	}
	return seeds
}

// order returns registrants in seed order, index 0 is seed 1.
func order(registrants []domain.Competitor, seeding domain.Seeding, rnd *rand.Rand) []domain.Competitor {
	ordered := make([]domain.Competitor, len(registrants))
	copy(ordered, registrants)
	switch seeding {
	case domain.SeedingRating:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Rating > ordered[j].Rating
		})
	case domain.SeedingRandom:
		rnd.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return ordered
}

// firstRoundSlots lays out seeded competitors over size slots. Missing seeds become voids (byes),
// so byes take the places of the lowest seeds. Random seeding fills slots sequentially.
func firstRoundSlots(ordered []domain.Competitor, size int, seeding domain.Seeding) []domain.Slot {
	slots := make([]domain.Slot, size)
	if seeding == domain.SeedingRandom {
		for i := range slots {
			if i < len(ordered) {
				slots[i].CompetitorID = ordered[i].ID
			} else {
				slots[i].Void = true
			}
		}
		return slots
	}
	for i, seed := range seedOrder(size) {
		if seed <= len(ordered) {
			slots[i].CompetitorID = ordered[seed-1].ID
		} else {
			slots[i].Void = true
		}
	}
	return slots
}

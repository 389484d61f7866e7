package reviews

import (
	"math"
	"sort"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
)

// Statistics windows
const (
	StatsMonths       = 12
	StatsRecentLimit  = 5
	monthLayout       = "2006-01"
	percentMultiplier = 100
)

// Stats summarises the approved reviews of a therapist
type Stats struct {
	TotalReviews       int64
	AverageRating      float64
	RatingDistribution map[int]int64
	// RecommendationRate is the percentage of reviews rated RecommendRating or better
	RecommendationRate float64
	TotalHelpfulVotes  int64
	Monthly            []MonthlyStats
	RecentReviews      []*Review
}

// MonthlyStats covers the reviews of one calendar month
type MonthlyStats struct {
	Month         string
	Count         int
	AverageRating float64
}

// List is a page of reviews with the rating summary of that page
type List struct {
	Page               *shared.Page[*Review]
	AverageRating      float64
	RatingDistribution map[int]int64
}

// NewDistribution returns a zeroed count for every rating
func NewDistribution() map[int]int64 {
	dist := make(map[int]int64, MaxRating-MinRating+1)
	for r := MinRating; r <= MaxRating; r++ {
		dist[r] = 0
	}
	return dist
}

// Summarize builds the totals of Stats from review counts per rating
func Summarize(counts map[int]int64) *Stats {
	s := &Stats{RatingDistribution: NewDistribution()}

	var sum, recommended int64
	for rating, count := range counts {
		if rating < MinRating || rating > MaxRating {
			continue
		}
		s.RatingDistribution[rating] = count
		s.TotalReviews += count
		sum += int64(rating) * count
		if rating >= RecommendRating {
			recommended += count
		}
	}
	if s.TotalReviews > 0 {
		s.AverageRating = round2(float64(sum) / float64(s.TotalReviews))
		s.RecommendationRate = round2(float64(recommended) * percentMultiplier / float64(s.TotalReviews))
	}
	return s
}

// SummarizeList returns the average rating and distribution of list
func SummarizeList(list []*Review) (float64, map[int]int64) {
	counts := NewDistribution()
	for _, r := range list {
		counts[r.Rating]++
	}
	s := Summarize(counts)
	return s.AverageRating, s.RatingDistribution
}

// MonthlyBreakdown groups reviews by UTC calendar month, oldest month first
func MonthlyBreakdown(list []*Review) []MonthlyStats {
	type bucket struct {
		count int
		sum   int
	}
	buckets := map[string]*bucket{}
	for _, r := range list {
		month := r.CreatedAt.UTC().Format(monthLayout)
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}
		b.count++
		b.sum += r.Rating
	}

	months := make([]MonthlyStats, 0, len(buckets))
	for month, b := range buckets {
		months = append(months, MonthlyStats{
			Month:         month,
			Count:         b.count,
			AverageRating: round2(float64(b.sum) / float64(b.count)),
		})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}

// StatsSince returns the start of the monthly statistics window ending at now
func StatsSince(now time.Time) time.Time {
	return now.UTC().AddDate(0, -StatsMonths, 0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

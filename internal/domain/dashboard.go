package domain

import (
	"time"

	"github.com/google/uuid"
)

// CardCounts groups card totals by status.
type CardCounts struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Review   int `json:"review"`
	Mastered int `json:"mastered"`
}

// Total returns the sum across all statuses.
func (c CardCounts) Total() int {
	return c.New + c.Learning + c.Review + c.Mastered
}

// Add counts the card into the bucket matching its status.
func (c *CardCounts) Add(status CardStatus) {
	switch status {
	case StatusNew:
		c.New++
	case StatusLearning:
		c.Learning++
	case StatusReview:
		c.Review++
	case StatusMastered:
		c.Mastered++
	}
}

// ScopeSummary is the per-deck or per-category slice of the dashboard.
// Inactive scopes still report their own counts so the client can show a
// backlog for a deck that is not currently trained.
type ScopeSummary struct {
	ID             uuid.UUID  `json:"id"`
	Kind           ScopeKind  `json:"kind"`
	Name           string     `json:"name"`
	LearningActive bool       `json:"is_learning_active"`
	Cards          CardCounts `json:"cards"`
	Due            int        `json:"due"`
}

// OrphanSummary covers the implicit scope of words without deck or category.
type OrphanSummary struct {
	Active bool       `json:"is_active"`
	Cards  CardCounts `json:"cards"`
	Due    int        `json:"due"`
}

// QuickStats is the headline block of the dashboard. TotalDue counts
// distinct due cards belonging to at least one active scope.
type QuickStats struct {
	TotalDue    int     `json:"total_due"`
	StreakDays  int     `json:"streak_days"`
	SuccessRate float64 `json:"success_rate"`
}

// TrainingDashboard is a derived snapshot, recomputed on every read and
// never persisted, so it is always consistent with the card store and
// scope registry at read time.
type TrainingDashboard struct {
	Decks      []ScopeSummary `json:"decks"`
	Categories []ScopeSummary `json:"categories"`
	Orphans    OrphanSummary  `json:"orphans"`
	QuickStats QuickStats     `json:"quick_stats"`
}

// TrainingSession is an ephemeral ordered queue of cards for one training
// round. It is never persisted; abandoning it has no server-side effect.
type TrainingSession struct {
	Cards      []*Card   `json:"cards"`
	TotalCount int       `json:"total_count"`
	BuiltAt    time.Time `json:"built_at"`
}

// StatsPeriod selects the trailing window for success-rate statistics.
type StatsPeriod string

// Possible stats period values.
const (
	PeriodDay   StatsPeriod = "day"
	PeriodWeek  StatsPeriod = "week"
	PeriodMonth StatsPeriod = "month"
	PeriodAll   StatsPeriod = "all"
)

// IsValid reports whether the period is one of the defined windows.
func (p StatsPeriod) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return true
	default:
		return false
	}
}

// Window returns the start of the trailing window ending at now.
// The zero time means unbounded (PeriodAll).
func (p StatsPeriod) Window(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// TrainingStats is the answer-history view for the stats endpoint.
type TrainingStats struct {
	Period        StatsPeriod `json:"period"`
	StreakDays    int         `json:"streak_days"`
	SuccessRate   float64     `json:"success_rate"`
	AnswerCount   int         `json:"answer_count"`
	CardsByStatus CardCounts  `json:"cards_by_status"`
}

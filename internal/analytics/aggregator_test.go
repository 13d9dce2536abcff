package analytics

import (
	"testing"
	"time"

	"builderclub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 0.0, Rate(5, 0))
	assert.Equal(t, 0.5, Rate(1, 2))
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 33, Percent(1, 3))
}

func TestCompute_Empty(t *testing.T) {
	stats := Compute(Snapshot{}, date(2024, 10, 1), time.UTC)

	assert.Equal(t, 0, stats.TotalMembers)
	assert.Equal(t, 0, stats.NewThisSemester)
	assert.Equal(t, 0.0, stats.ProfileCompletionRate)
	assert.Equal(t, 0.0, stats.EngagementRate)
	assert.Equal(t, 0.0, stats.AvgRSVPsPerEvent)
	assert.Equal(t, 0, stats.MembersWithNoRSVPs)
	assert.False(t, stats.EventsSynced)
	assert.Empty(t, stats.EventRSVPBreakdown)
	assert.Empty(t, stats.TopActiveMembers)
	assert.Empty(t, stats.RetentionRows)
	assert.Empty(t, stats.YearBreakdown)
	assert.Equal(t, "Fall 2024", stats.CurrentSemester)
}

func TestCompute_RetentionAcrossSemesters(t *testing.T) {
	snap := Snapshot{
		Members: []domain.Member{
			{UID: "u1", DisplayName: "Ada", Email: "ada@psu.edu", CreatedAt: date(2024, 2, 10)},
			{UID: "u2", DisplayName: "Grace", Email: "grace@psu.edu", CreatedAt: date(2024, 3, 1)},
		},
		Events: []domain.Event{
			{ID: "e1", Title: "Summer build night", Start: date(2024, 7, 1)},
		},
		Attendees: map[string][]string{"e1": {"u1"}},
	}

	stats := Compute(snap, date(2024, 10, 1), time.UTC)

	require.Len(t, stats.RetentionRows, 1)
	row := stats.RetentionRows[0]
	assert.Equal(t, "Spring 2024", row.FromSemester)
	assert.Equal(t, "Summer 2024", row.ToSemester)
	assert.Equal(t, 2, row.CohortSize)
	assert.Equal(t, 1, row.Retained)
	assert.Equal(t, 0.5, row.Rate)
}

func TestCompute_RetentionSkipsFutureSemesters(t *testing.T) {
	members := []domain.Member{
		{UID: "a", CreatedAt: date(2024, 2, 1)},  // Spring -> Summer 2024, passed
		{UID: "b", CreatedAt: date(2024, 9, 15)}, // Fall -> Spring 2025, not started
		{UID: "c"},                               // no join date
	}

	t.Run("Next semester not started", func(t *testing.T) {
		stats := Compute(Snapshot{Members: members}, date(2024, 10, 1), time.UTC)
		require.Len(t, stats.RetentionRows, 1)
		assert.Equal(t, "Spring 2024", stats.RetentionRows[0].FromSemester)
		assert.Equal(t, 0, stats.RetentionRows[0].Retained)
		assert.Equal(t, 0.0, stats.RetentionRows[0].Rate)
	})

	t.Run("Next semester just started", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		stats := Compute(Snapshot{Members: members}, now, time.UTC)
		require.Len(t, stats.RetentionRows, 2)
		assert.Equal(t, "Fall 2024", stats.RetentionRows[1].FromSemester)
		assert.Equal(t, "Spring 2025", stats.RetentionRows[1].ToSemester)
	})

	t.Run("Rows never reference a future semester", func(t *testing.T) {
		now := date(2024, 10, 1)
		current := SemesterOf(now, time.UTC)
		stats := Compute(Snapshot{Members: members}, now, time.UTC)
		for _, row := range stats.RetentionRows {
			to, err := ParseSemester(row.ToSemester)
			require.NoError(t, err)
			start, _ := to.Range(time.UTC)
			assert.True(t, !start.After(now) || to == current)
		}
	})
}

func TestCompute_NewThisSemesterAtLastInstant(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 59, 59, 900_000_000, time.UTC)
	members := []domain.Member{{UID: "u1", CreatedAt: now}}

	stats := Compute(Snapshot{Members: members}, now, time.UTC)

	assert.Equal(t, 1, stats.NewThisSemester)
}

func TestCompute_Engagement(t *testing.T) {
	snap := Snapshot{
		Members: []domain.Member{
			{UID: "u1", DisplayName: "Ada", Email: "ada@psu.edu"},
			{UID: "u2", DisplayName: "Grace", Email: "grace@psu.edu"},
			{UID: "u3", DisplayName: "Linus", Email: "linus@psu.edu"},
		},
		Events: []domain.Event{
			{ID: "e1", Title: "Kickoff", Start: date(2024, 9, 5)},
			{ID: "e2", Title: "Workshop", Start: date(2024, 9, 12)},
			{ID: "e3", Title: "Demo day", Start: date(2024, 9, 19)},
		},
		Attendees: map[string][]string{
			"e1": {"u1", "u2", "ghost"},
			"e2": {"u1"},
		},
	}

	stats := Compute(snap, date(2024, 10, 1), time.UTC)

	assert.Equal(t, 4, stats.TotalRSVPs)
	assert.InDelta(t, 4.0/3.0, stats.AvgRSVPsPerEvent, 1e-9)
	assert.Equal(t, 2, stats.EngagedMembers)
	assert.Equal(t, 1, stats.MembersWithNoRSVPs)
	assert.Equal(t, stats.TotalMembers, stats.EngagedMembers+stats.MembersWithNoRSVPs)
	assert.LessOrEqual(t, stats.EngagementRate, 1.0)
	assert.InDelta(t, 2.0/3.0, stats.EngagementRate, 1e-9)
	assert.True(t, stats.EventsSynced)

	require.Len(t, stats.EventRSVPBreakdown, 3)
	assert.Equal(t, "e1", stats.EventRSVPBreakdown[0].EventID)
	assert.Equal(t, 3, stats.EventRSVPBreakdown[0].Count)
	assert.Equal(t, "e2", stats.EventRSVPBreakdown[1].EventID)
	assert.Equal(t, 0, stats.EventRSVPBreakdown[2].Count)

	require.Len(t, stats.TopActiveMembers, 3)
	assert.Equal(t, TopMember{UID: "u1", DisplayName: "Ada", Email: "ada@psu.edu", RSVPCount: 2}, stats.TopActiveMembers[0])
	assert.Equal(t, TopMember{UID: "ghost", DisplayName: "Unknown", Email: "ghost", RSVPCount: 1}, stats.TopActiveMembers[1])
	assert.Equal(t, "u2", stats.TopActiveMembers[2].UID)
}

func TestCompute_TopMembersCapped(t *testing.T) {
	snap := Snapshot{
		Events:    []domain.Event{{ID: "e1"}, {ID: "e2"}},
		Attendees: map[string][]string{"e1": {"a", "b", "c", "d", "e", "f", "g"}, "e2": {"g"}},
	}
	stats := Compute(snap, date(2024, 10, 1), time.UTC)
	require.Len(t, stats.TopActiveMembers, topMemberLimit)
	assert.Equal(t, "g", stats.TopActiveMembers[0].UID)
	assert.Equal(t, "a", stats.TopActiveMembers[1].UID)
}

func TestCompute_MembershipAndBreakdowns(t *testing.T) {
	hidden := false
	snap := Snapshot{
		Members: []domain.Member{
			{
				UID: "u1", DisplayName: "Ada", Major: "Computer Science", Year: domain.YearJunior,
				College: "Engineering", TechLevel: domain.TechLevelAdvanced,
				Interests: []string{"agents", "evals", "web"}, EmailReminders: true, Newsletter: true,
				IsAdmin: true, ReferralSource: "friend", CreatedAt: date(2024, 9, 3),
			},
			{
				UID: "u2", DisplayName: "Grace", Major: "Computer Science", Year: domain.YearSenior,
				Interests: []string{"agents"}, Newsletter: true, CreatedAt: date(2024, 1, 20),
				ProfilePublic: &hidden,
			},
			{UID: "u3"},
		},
		Resources:   []domain.Resource{{Published: true}, {Published: true}, {}},
		CaseStudies: []domain.CaseStudy{{}, {Published: true}},
	}

	stats := Compute(snap, date(2024, 10, 1), time.UTC)

	assert.Equal(t, 3, stats.TotalMembers)
	assert.Equal(t, 1, stats.NewThisSemester)
	assert.Equal(t, 1, stats.AdminCount)
	assert.InDelta(t, 1.0/3.0, stats.ProfileCompletionRate, 1e-9)
	assert.Equal(t, 1, stats.EmailRemindersOptIn)
	assert.Equal(t, 2, stats.NewsletterOptIn)

	assert.Equal(t, map[string]int{"junior": 1, "senior": 1}, stats.YearBreakdown)
	assert.Equal(t, map[string]int{"Engineering": 1}, stats.CollegeBreakdown)
	assert.Equal(t, map[string]int{"advanced": 1}, stats.TechLevelBreakdown)
	assert.Equal(t, map[string]int{"Computer Science": 2}, stats.MajorBreakdown)
	assert.Equal(t, map[string]int{"agents": 2, "evals": 1, "web": 1}, stats.InterestsBreakdown)
	assert.Equal(t, map[string]int{"friend": 1}, stats.ReferralSourceBreakdown)

	assert.Equal(t, 2, stats.ResourcesPublished)
	assert.Equal(t, 1, stats.ResourcesDraft)
	assert.Equal(t, 1, stats.CaseStudiesPublished)
	assert.Equal(t, 1, stats.CaseStudiesDraft)
}

package analytics

import (
	"math"
	"sort"
	"time"

	"builderclub-backend/internal/domain"
)

const topMemberLimit = 5

// Snapshot is the raw input of the dashboard. Reads across collections are not
// transactional, so it is a best-effort point-in-time view.
type Snapshot struct {
	Members     []domain.Member
	Events      []domain.Event
	Attendees   map[string][]string // event id -> member ids
	Resources   []domain.Resource
	CaseStudies []domain.CaseStudy
}

type EventRSVPSummary struct {
	EventID string    `json:"eventId"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	Count   int       `json:"count"`
}

type TopMember struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	RSVPCount   int    `json:"rsvpCount"`
}

type RetentionRow struct {
	FromSemester string  `json:"fromSemester"`
	ToSemester   string  `json:"toSemester"`
	CohortSize   int     `json:"cohortSize"`
	Retained     int     `json:"retained"`
	Rate         float64 `json:"rate"`
}

// Stats holds every dashboard figure. Rates are fractions in [0, 1].
type Stats struct {
	TotalMembers          int     `json:"totalMembers"`
	NewThisSemester       int     `json:"newThisSemester"`
	CurrentSemester       string  `json:"currentSemester"`
	ProfileCompletionRate float64 `json:"profileCompletionRate"`
	AdminCount            int     `json:"adminCount"`

	EngagementRate      float64 `json:"engagementRate"`
	EngagedMembers      int     `json:"engagedMembers"`
	AvgRSVPsPerEvent    float64 `json:"avgRsvpsPerEvent"`
	TotalRSVPs          int     `json:"totalRsvps"`
	MembersWithNoRSVPs  int     `json:"membersWithNoRsvps"`
	EmailRemindersOptIn int     `json:"emailRemindersOptIn"`
	NewsletterOptIn     int     `json:"newsletterOptIn"`

	EventsHosted       int                `json:"eventsHosted"`
	EventsSynced       bool               `json:"eventsSynced"`
	EventRSVPBreakdown []EventRSVPSummary `json:"eventRsvpBreakdown"`
	TopActiveMembers   []TopMember        `json:"topActiveMembers"`

	RetentionRows []RetentionRow `json:"retentionRows"`

	ResourcesPublished   int `json:"resourcesPublished"`
	ResourcesDraft       int `json:"resourcesDraft"`
	CaseStudiesPublished int `json:"caseStudiesPublished"`
	CaseStudiesDraft     int `json:"caseStudiesDraft"`

	YearBreakdown           map[string]int `json:"yearBreakdown"`
	CollegeBreakdown        map[string]int `json:"collegeBreakdown"`
	TechLevelBreakdown      map[string]int `json:"techLevelBreakdown"`
	MajorBreakdown          map[string]int `json:"majorBreakdown"`
	InterestsBreakdown      map[string]int `json:"interestsBreakdown"`
	ReferralSourceBreakdown map[string]int `json:"referralSourceBreakdown"`
}

// Rate divides num by denom, returning 0 for an empty denominator.
func Rate(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

// Percent is Rate rounded to a whole percentage for display.
func Percent(num, denom int) int {
	return int(math.Round(Rate(num, denom) * 100))
}

// Compute derives the dashboard from a snapshot. It never fails; empty input
// yields zero counts and zero rates.
func Compute(snap Snapshot, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}
	current := SemesterOf(now, loc)

	stats := Stats{
		TotalMembers:            len(snap.Members),
		CurrentSemester:         current.Label(),
		EventsHosted:            len(snap.Events),
		EventsSynced:            len(snap.Events) > 0,
		EventRSVPBreakdown:      []EventRSVPSummary{},
		TopActiveMembers:        []TopMember{},
		RetentionRows:           []RetentionRow{},
		YearBreakdown:           map[string]int{},
		CollegeBreakdown:        map[string]int{},
		TechLevelBreakdown:      map[string]int{},
		MajorBreakdown:          map[string]int{},
		InterestsBreakdown:      map[string]int{},
		ReferralSourceBreakdown: map[string]int{},
	}

	members := make(map[string]*domain.Member, len(snap.Members))
	complete := 0
	for i := range snap.Members {
		m := &snap.Members[i]
		members[m.UID] = m

		if m.IsAdmin {
			stats.AdminCount++
		}
		if m.HasJoinDate() && current.Contains(m.CreatedAt, loc) {
			stats.NewThisSemester++
		}
		if m.IsProfileComplete() {
			complete++
		}
		if m.EmailReminders {
			stats.EmailRemindersOptIn++
		}
		if m.Newsletter {
			stats.NewsletterOptIn++
		}
		countNonEmpty(stats.YearBreakdown, string(m.Year))
		countNonEmpty(stats.CollegeBreakdown, m.College)
		countNonEmpty(stats.TechLevelBreakdown, string(m.TechLevel))
		countNonEmpty(stats.MajorBreakdown, m.Major)
		countNonEmpty(stats.ReferralSourceBreakdown, m.ReferralSource)
		for _, interest := range m.Interests {
			countNonEmpty(stats.InterestsBreakdown, interest)
		}
	}
	stats.ProfileCompletionRate = Rate(complete, stats.TotalMembers)

	rsvpCounts := make(map[string]int)
	bySemester := make(map[Semester]map[string]struct{})
	for _, ev := range snap.Events {
		attendees := snap.Attendees[ev.ID]
		var set map[string]struct{}
		if !ev.Start.IsZero() {
			sem := SemesterOf(ev.Start, loc)
			if set = bySemester[sem]; set == nil {
				set = make(map[string]struct{})
				bySemester[sem] = set
			}
		}
		for _, uid := range attendees {
			rsvpCounts[uid]++
			if set != nil {
				set[uid] = struct{}{}
			}
		}
		stats.TotalRSVPs += len(attendees)
		stats.EventRSVPBreakdown = append(stats.EventRSVPBreakdown, EventRSVPSummary{
			EventID: ev.ID,
			Title:   ev.Title,
			Start:   ev.Start,
			Count:   len(attendees),
		})
	}
	sort.SliceStable(stats.EventRSVPBreakdown, func(i, j int) bool {
		return stats.EventRSVPBreakdown[i].Count > stats.EventRSVPBreakdown[j].Count
	})
	stats.AvgRSVPsPerEvent = Rate(stats.TotalRSVPs, stats.EventsHosted)

	// RSVPs left behind by removed profiles do not count toward engagement.
	for uid := range rsvpCounts {
		if _, ok := members[uid]; ok {
			stats.EngagedMembers++
		}
	}
	stats.EngagementRate = Rate(stats.EngagedMembers, stats.TotalMembers)
	stats.MembersWithNoRSVPs = stats.TotalMembers - stats.EngagedMembers

	stats.TopActiveMembers = topMembers(rsvpCounts, members, topMemberLimit)
	stats.RetentionRows = retention(snap.Members, bySemester, now, loc)

	for _, r := range snap.Resources {
		if r.Published {
			stats.ResourcesPublished++
		} else {
			stats.ResourcesDraft++
		}
	}
	for _, c := range snap.CaseStudies {
		if c.Published {
			stats.CaseStudiesPublished++
		} else {
			stats.CaseStudiesDraft++
		}
	}

	return stats
}

func countNonEmpty(bucket map[string]int, key string) {
	if key == "" {
		return
	}
	bucket[key]++
}

// topMembers ranks by RSVP count, breaking ties by uid so the order is stable.
func topMembers(counts map[string]int, members map[string]*domain.Member, limit int) []TopMember {
	uids := make([]string, 0, len(counts))
	for uid := range counts {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool {
		if counts[uids[i]] != counts[uids[j]] {
			return counts[uids[i]] > counts[uids[j]]
		}
		return uids[i] < uids[j]
	})
	if len(uids) > limit {
		uids = uids[:limit]
	}

	top := make([]TopMember, 0, len(uids))
	for _, uid := range uids {
		tm := TopMember{UID: uid, DisplayName: "Unknown", Email: uid, RSVPCount: counts[uid]}
		if m, ok := members[uid]; ok {
			if m.DisplayName != "" {
				tm.DisplayName = m.DisplayName
			}
			if m.Email != "" {
				tm.Email = m.Email
			}
		}
		top = append(top, tm)
	}
	return top
}

// retention emits one row per join cohort, comparing it against RSVPs in the
// following semester. Rows whose next semester has not started are omitted
// unless that semester is the current one.
func retention(members []domain.Member, rsvps map[Semester]map[string]struct{}, now time.Time, loc *time.Location) []RetentionRow {
	cohorts := make(map[Semester][]string)
	for _, m := range members {
		if !m.HasJoinDate() {
			continue
		}
		sem := SemesterOf(m.CreatedAt, loc)
		cohorts[sem] = append(cohorts[sem], m.UID)
	}

	semesters := make([]Semester, 0, len(cohorts))
	for sem := range cohorts {
		semesters = append(semesters, sem)
	}
	SortSemesters(semesters)

	current := SemesterOf(now, loc)
	rows := []RetentionRow{}
	for _, from := range semesters {
		to := from.Next()
		toStart, _ := to.Range(loc)
		if toStart.After(now) && to != current {
			continue
		}
		cohort := cohorts[from]
		if len(cohort) == 0 {
			continue
		}
		retained := 0
		for _, uid := range cohort {
			if _, ok := rsvps[to][uid]; ok {
				retained++
			}
		}
		rows = append(rows, RetentionRow{
			FromSemester: from.Label(),
			ToSemester:   to.Label(),
			CohortSize:   len(cohort),
			Retained:     retained,
			Rate:         Rate(retained, len(cohort)),
		})
	}
	return rows
}

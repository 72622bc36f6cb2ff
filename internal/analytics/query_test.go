package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/workshop-analytics/internal/models"
)

func TestQuery_Matches(t *testing.T) {
	base := january(t)
	job := &models.Job{
		ID:                    "j1",
		Type:                  models.JobTypeRepair,
		AssignedTechnicianIDs: []string{"t1", "t2"},
		CreatedAt:             day(2025, 1, 10),
	}

	tests := []struct {
		name     string
		query    Query
		job      *models.Job
		expected bool
	}{
		{"unfiltered in period", base, job, true},
		{"all sentinel", base.WithTechnician(AllTechnicians), job, true},
		{"assigned technician", base.WithTechnician("t2"), job, true},
		{"other technician", base.WithTechnician("t3"), job, false},
		{"matching type", base.WithJobTypes(models.JobTypeService, models.JobTypeRepair), job, true},
		{"other type", base.WithJobTypes(models.JobTypeTow), job, false},
		{"created outside period", base, &models.Job{CreatedAt: day(2024, 12, 31)}, false},
		{"legacy technician field", base.WithTechnician("t9"), &models.Job{AssignedTechnicianID: "t9", CreatedAt: day(2025, 1, 2)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.query.Matches(tt.job))
		})
	}
}

func TestQuery_MissingCreationDateUsesAsOf(t *testing.T) {
	q := january(t)
	job := &models.Job{ID: "undated"}

	assert.False(t, q.Matches(job), "AsOf is after the period")
	assert.True(t, q.WithAsOf(day(2025, 1, 20)).Matches(job))
}

func TestQuery_WithHelpersDoNotAlias(t *testing.T) {
	types := []models.JobType{models.JobTypeService}
	q := january(t).WithJobTypes(types...)
	types[0] = models.JobTypeTow

	assert.Equal(t, []models.JobType{models.JobTypeService}, q.JobTypes)
	assert.False(t, january(t).FiltersAssignment())
	assert.True(t, q.FiltersAssignment())
	assert.False(t, january(t).WithTechnician(" all ").FiltersTechnician())
}

func TestQuery_ZeroAsOfMeansNow(t *testing.T) {
	now := time.Now()
	q := Query{Period: mustPeriod(t, now.AddDate(0, 0, -7), now)}
	undated := models.Job{
		ID:                   "undated",
		Status:               models.JobStatusCompleted,
		AssignedTechnicianID: "t1",
	}

	assert.True(t, q.Matches(&undated))

	engine := NewEngine(Snapshot{Jobs: []models.Job{undated}})

	r := engine.ComputeReport(q)
	assert.Equal(t, 1, r.FilteredJobs)
	assert.Equal(t, 1, r.CompletedCount)
	assert.False(t, r.GeneratedAt.IsZero())
	require.Len(t, r.Leaderboard, 1)
	assert.Equal(t, 1, r.Leaderboard[0].CompletedJobs)

	drill := engine.ComputeTechnicianReport("t1", q)
	assert.Len(t, drill.Jobs, 1)
	assert.Equal(t, 1, drill.TotalJobs)
	assert.False(t, drill.Jobs[0].CreatedAt.IsZero())
}

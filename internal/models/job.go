package models

import (
	"strings"
	"time"
)

// JobType is the kind of work a job was logged as.
type JobType string

const (
	JobTypeService          JobType = "service"
	JobTypeRepair           JobType = "repair"
	JobTypeTow              JobType = "tow"
	JobTypeComplaint        JobType = "complaint"
	JobTypeServiceAndRepair JobType = "service_and_repair"
)

// JobStatus tracks a job through the workshop.
type JobStatus string

const (
	JobStatusReceived  JobStatus = "received"
	JobStatusDiagnosed JobStatus = "diagnosed"
	JobStatusRepairing JobStatus = "repairing"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// GeneralIssueLabel stands in for a job logged without any issue labels.
const GeneralIssueLabel = "General / Other"

// PartUsage is a part consumed by a job.
type PartUsage struct {
	PartID    string  `bson:"part_id" json:"part_id"`
	PartName  string  `bson:"part_name" json:"part_name"`
	Quantity  float64 `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
}

// Job represents a workshop job card.
type Job struct {
	ID            string      `bson:"_id,omitempty" json:"id"`
	WorkshopID    string      `bson:"workshop_id" json:"workshop_id"`
	CustomerID    string      `bson:"customer_id" json:"customer_id"`
	VehicleID     string      `bson:"vehicle_id" json:"vehicle_id"`
	Type          JobType     `bson:"type" json:"type"`
	Issues        []string    `bson:"issues,omitempty" json:"issues,omitempty"`
	Status        JobStatus   `bson:"status" json:"status"`
	ServiceCharge float64     `bson:"service_charge" json:"service_charge"`
	PartsUsed     []PartUsage `bson:"parts_used,omitempty" json:"parts_used,omitempty"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
	CompletedAt   *time.Time  `bson:"completed_at,omitempty" json:"completed_at,omitempty"`

	// AssignedTechnicianIDs supersedes AssignedTechnicianID. Read both through Technicians.
	AssignedTechnicianIDs []string `bson:"assigned_technician_ids,omitempty" json:"assigned_technician_ids,omitempty"`
	AssignedTechnicianID  string   `bson:"assigned_technician_id,omitempty" json:"assigned_technician_id,omitempty"`
}

// Technicians returns the effective technician set: the multi-technician
// field when it holds any id, else the legacy single field, else nothing.
// Ids are deduplicated in order and blanks dropped.
func (j *Job) Technicians() []string {
	src := j.AssignedTechnicianIDs
	if len(src) == 0 && j.AssignedTechnicianID != "" {
		src = []string{j.AssignedTechnicianID}
	}
	if len(src) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(src))
	out := make([]string, 0, len(src))
	for _, id := range src {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsAssignedTo reports whether technicianID is in the job's effective set.
func (j *Job) IsAssignedTo(technicianID string) bool {
	for _, id := range j.Technicians() {
		if id == technicianID {
			return true
		}
	}
	return false
}

// IssueLabels returns the trimmed, non-blank issue labels, or the general
// label when none were recorded.
func (j *Job) IssueLabels() []string {
	out := make([]string, 0, len(j.Issues))
	for _, issue := range j.Issues {
		if issue = strings.TrimSpace(issue); issue != "" {
			out = append(out, issue)
		}
	}
	if len(out) == 0 {
		return []string{GeneralIssueLabel}
	}
	return out
}

// CreatedOr returns CreatedAt, or fallback when the record has none.
func (j *Job) CreatedOr(fallback time.Time) time.Time {
	if j.CreatedAt.IsZero() {
		return fallback
	}
	return j.CreatedAt
}

// IsCompleted reports whether the job is in the completed state.
func (j *Job) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}

// IsValidJobType checks if a job type is known
func IsValidJobType(t JobType) bool {
	switch t {
	case JobTypeService, JobTypeRepair, JobTypeTow, JobTypeComplaint, JobTypeServiceAndRepair:
		return true
	default:
		return false
	}
}

package tables

import (
	"strings"
	"time"
)

// Table names as they appear in the store.
const (
	RecordsTable        = "Records"
	UsersTable          = "Users"
	StepsTable          = "Steps"
	WorkflowStatusTable = "Workflow_Status"
)

// Names lists the four tables in the order they are written.
var Names = []string{RecordsTable, UsersTable, StepsTable, WorkflowStatusTable}

// Required lists the tables whose absence makes a store unusable. A missing
// Workflow_Status table can be recreated empty without losing data.
var Required = []string{RecordsTable, UsersTable, StepsTable}

// Columns maps each table to its column names in write order.
var Columns = map[string][]string{
	RecordsTable:        {"Unique_ID", "Client_Group", "Legal_Entity", "Solution", "Created_Date", "Created_By"},
	UsersTable:          {"Username", "Role", "Email"},
	StepsTable:          {"Step_ID", "Header", "Step_Name", "Required_Role", "Attachment_Required", "Optional"},
	WorkflowStatusTable: {"Unique_ID", "Step_ID", "Status", "Assigned_To", "Completed_By", "Completed_Date", "Comments", "Attachment_Path"},
}

// Record is one tracked client engagement.
type Record struct {
	UniqueID    int       `yaml:"unique_id" json:"unique_id"`
	ClientGroup string    `yaml:"client_group" json:"client_group"`
	LegalEntity string    `yaml:"legal_entity" json:"legal_entity"`
	Solution    string    `yaml:"solution" json:"solution"`
	CreatedDate time.Time `yaml:"created_date" json:"created_date"`
	CreatedBy   string    `yaml:"created_by" json:"created_by"`
}

// User is someone who may act on records.
type User struct {
	Username string `yaml:"username" json:"username"`
	Role     Role   `yaml:"role" json:"role"`
	Email    string `yaml:"email" json:"email"`
}

// StepTemplate is one stage of the checklist. Its StepID also defines its
// position in the checklist.
type StepTemplate struct {
	StepID             int          `yaml:"step_id" json:"step_id"`
	Header             string       `yaml:"header" json:"header"`
	StepName           string       `yaml:"step_name" json:"step_name"`
	RequiredRole       RequiredRole `yaml:"required_role" json:"required_role"`
	AttachmentRequired bool         `yaml:"attachment_required" json:"attachment_required"`
	Optional           bool         `yaml:"optional" json:"optional"`
}

// StatusRow is the mutable state of one step for one record. The pair
// (UniqueID, StepID) is unique within the table.
type StatusRow struct {
	UniqueID       int       `json:"unique_id"`
	StepID         int       `json:"step_id"`
	Status         Status    `json:"status"`
	AssignedTo     string    `json:"assigned_to,omitempty"`
	CompletedBy    string    `json:"completed_by,omitempty"`
	CompletedDate  time.Time `json:"completed_date,omitempty"`
	Comments       string    `json:"comments,omitempty"`
	AttachmentPath string    `json:"attachment_path,omitempty"`
}

// attachmentSeparator joins several attachment paths in one cell.
const attachmentSeparator = ";"

// Attachments splits AttachmentPath into its individual paths.
func (r StatusRow) Attachments() []string {
	var paths []string
	for _, p := range strings.Split(r.AttachmentPath, attachmentSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// JoinAttachments builds an AttachmentPath cell from individual paths.
func JoinAttachments(paths []string) string {
	return strings.Join(paths, attachmentSeparator)
}

// Tables holds the full contents of the store.
type Tables struct {
	Records []Record
	Users   []User
	Steps   []StepTemplate
	Status  []StatusRow
}

// Clone returns a deep copy so callers can mutate without affecting t.
func (t *Tables) Clone() *Tables {
	if t == nil {
		return nil
	}
	return &Tables{
		Records: append([]Record(nil), t.Records...),
		Users:   append([]User(nil), t.Users...),
		Steps:   append([]StepTemplate(nil), t.Steps...),
		Status:  append([]StatusRow(nil), t.Status...),
	}
}

// Record returns the record with the given id.
func (t *Tables) Record(id int) (Record, bool) {
	for _, r := range t.Records {
		if r.UniqueID == id {
			return r, true
		}
	}
	return Record{}, false
}

// User returns the user with the given username.
func (t *Tables) User(username string) (User, bool) {
	for _, u := range t.Users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

// Step returns the step template with the given id.
func (t *Tables) Step(id int) (StepTemplate, bool) {
	for _, s := range t.Steps {
		if s.StepID == id {
			return s, true
		}
	}
	return StepTemplate{}, false
}

// StatusIndex returns the position of the status row for (recordID, stepID)
// in t.Status, or -1 when there is none.
func (t *Tables) StatusIndex(recordID, stepID int) int {
	for i, row := range t.Status {
		if row.UniqueID == recordID && row.StepID == stepID {
			return i
		}
	}
	return -1
}

// StatusFor returns the status rows belonging to a record, in table order.
func (t *Tables) StatusFor(recordID int) []StatusRow {
	var rows []StatusRow
	for _, row := range t.Status {
		if row.UniqueID == recordID {
			rows = append(rows, row)
		}
	}
	return rows
}

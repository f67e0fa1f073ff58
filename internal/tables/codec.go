package tables

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
)

// TimeLayout is the layout used when writing timestamps to a cell.
const TimeLayout = "2006-01-02 15:04:05"

// readLayouts are tried in order when parsing a timestamp cell.
var readLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"1/2/06 15:04",
	"01-02-06 15:04",
}

// Table is one table in cell form, ready to be written by a store.
// Row values are int, bool or string.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Encode converts t into its four cell tables, in Names order.
func (t *Tables) Encode() []Table {
	records := Table{Name: RecordsTable, Columns: Columns[RecordsTable]}
	for _, r := range t.Records {
		records.Rows = append(records.Rows, []any{
			r.UniqueID, r.ClientGroup, r.LegalEntity, r.Solution, FormatTime(r.CreatedDate), r.CreatedBy,
		})
	}

	users := Table{Name: UsersTable, Columns: Columns[UsersTable]}
	for _, u := range t.Users {
		users.Rows = append(users.Rows, []any{u.Username, string(u.Role), u.Email})
	}

	steps := Table{Name: StepsTable, Columns: Columns[StepsTable]}
	for _, s := range t.Steps {
		steps.Rows = append(steps.Rows, []any{
			s.StepID, s.Header, s.StepName, string(s.RequiredRole), s.AttachmentRequired, s.Optional,
		})
	}

	status := Table{Name: WorkflowStatusTable, Columns: Columns[WorkflowStatusTable]}
	for _, row := range t.Status {
		status.Rows = append(status.Rows, []any{
			row.UniqueID, row.StepID, string(row.Status), row.AssignedTo, row.CompletedBy,
			FormatTime(row.CompletedDate), row.Comments, row.AttachmentPath,
		})
	}

	return []Table{records, users, steps, status}
}

// Decode parses one table given as a header row and string cells, and
// stores the result in the matching field of t. Columns are matched by
// header name. Blank rows are skipped. Malformed key cells are reported as
// ErrStoreMissingOrCorrupt.
func (t *Tables) Decode(name string, header []string, rows [][]string) error {
	cols := indexColumns(header)
	read := func(row []string, column string) string {
		i, ok := cols[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, key := range keyColumns(name) {
		if _, ok := cols[key]; !ok {
			return fmt.Errorf("%w: table %s has no %s column", kerrors.ErrStoreMissingOrCorrupt, name, key)
		}
	}

	for n, row := range rows {
		if blank(row) {
			continue
		}
		// Header is row 1, so data starts at row 2.
		line := n + 2
		var err error
		switch name {
		case RecordsTable:
			var r Record
			if r.UniqueID, err = ParseInt(read(row, "Unique_ID")); err != nil {
				break
			}
			r.ClientGroup = read(row, "Client_Group")
			r.LegalEntity = read(row, "Legal_Entity")
			r.Solution = read(row, "Solution")
			if r.CreatedDate, err = ParseTime(read(row, "Created_Date")); err != nil {
				break
			}
			r.CreatedBy = read(row, "Created_By")
			t.Records = append(t.Records, r)

		case UsersTable:
			t.Users = append(t.Users, User{
				Username: read(row, "Username"),
				Role:     Role(read(row, "Role")),
				Email:    read(row, "Email"),
			})

		case StepsTable:
			var s StepTemplate
			if s.StepID, err = ParseInt(read(row, "Step_ID")); err != nil {
				break
			}
			s.Header = read(row, "Header")
			s.StepName = read(row, "Step_Name")
			s.RequiredRole = RequiredRole(read(row, "Required_Role"))
			if s.AttachmentRequired, err = ParseBool(read(row, "Attachment_Required")); err != nil {
				break
			}
			if s.Optional, err = ParseBool(read(row, "Optional")); err != nil {
				break
			}
			t.Steps = append(t.Steps, s)

		case WorkflowStatusTable:
			var s StatusRow
			if s.UniqueID, err = ParseInt(read(row, "Unique_ID")); err != nil {
				break
			}
			if s.StepID, err = ParseInt(read(row, "Step_ID")); err != nil {
				break
			}
			s.Status = Status(read(row, "Status"))
			s.AssignedTo = read(row, "Assigned_To")
			s.CompletedBy = read(row, "Completed_By")
			if s.CompletedDate, err = ParseTime(read(row, "Completed_Date")); err != nil {
				break
			}
			s.Comments = read(row, "Comments")
			s.AttachmentPath = read(row, "Attachment_Path")
			t.Status = append(t.Status, s)

		default:
			return fmt.Errorf("unknown table %q", name)
		}
		if err != nil {
			return fmt.Errorf("%w: table %s row %d: %v", kerrors.ErrStoreMissingOrCorrupt, name, line, err)
		}
	}
	return nil
}

func keyColumns(name string) []string {
	switch name {
	case RecordsTable:
		return []string{"Unique_ID"}
	case UsersTable:
		return []string{"Username"}
	case StepsTable:
		return []string{"Step_ID"}
	case WorkflowStatusTable:
		return []string{"Unique_ID", "Step_ID"}
	}
	return nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, seen := cols[h]; !seen && h != "" {
			cols[h] = i
		}
	}
	return cols
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// FormatTime renders a timestamp cell. The zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// ParseTime parses a timestamp cell. "", "NaT" and "nan" yield the zero time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nat") || strings.EqualFold(s, "nan") {
		return time.Time{}, nil
	}
	for _, layout := range readLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// ParseInt parses an integer cell. Whole floats such as "1000.0" are
// accepted because spreadsheet tools often widen integer columns.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// ParseBool parses a boolean cell. An empty cell is false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0", "no", "n", "nan":
		return false, nil
	case "true", "1", "yes", "y":
		return true, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

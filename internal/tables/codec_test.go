package tables

import (
	"errors"
	"strconv"
	"testing"
	"time"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"Not Started", StatusNotStarted, false},
		{"in progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"  Completed ", StatusCompleted, false},
		{"not_started", StatusNotStarted, false},
		{"Done", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseStatus(tc.input)
			if tc.wantErr {
				if !errors.Is(err, kerrors.ErrInvalidStatus) {
					t.Fatalf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("lead"); err != nil || r != RoleLead {
		t.Errorf("ParseRole(lead) = %q, %v", r, err)
	}
	if _, err := ParseRole("Admin"); !errors.Is(err, kerrors.ErrInvalidRole) {
		t.Errorf("ParseRole(Admin) error = %v, want ErrInvalidRole", err)
	}
	if Role("Admin").Known() {
		t.Error("Admin should not be a known role")
	}
}

func TestParseInt(t *testing.T) {
	for input, want := range map[string]int{"1000": 1000, "1000.0": 1000, " 7 ": 7} {
		got, err := ParseInt(input)
		if err != nil || got != want {
			t.Errorf("ParseInt(%q) = %d, %v; want %d", input, got, err, want)
		}
	}
	for _, input := range []string{"", "abc", "10.5"} {
		if _, err := ParseInt(input); err == nil {
			t.Errorf("ParseInt(%q) expected error", input)
		}
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)
	for _, input := range []string{"2024-03-05 14:30:00", "2024-03-05T14:30:00", "3/5/24 14:30"} {
		got, err := ParseTime(input)
		if err != nil {
			t.Fatalf("ParseTime(%q) failed: %v", input, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseTime(%q) = %v, want %v", input, got, want)
		}
	}

	for _, input := range []string{"", "NaT", "nan"} {
		got, err := ParseTime(input)
		if err != nil || !got.IsZero() {
			t.Errorf("ParseTime(%q) = %v, %v; want zero time", input, got, err)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	original := &Tables{
		Records: []Record{{UniqueID: 1000, ClientGroup: "Acme", LegalEntity: "Acme US", Solution: "Analytics", CreatedDate: created, CreatedBy: "john.doe"}},
		Users:   []User{{Username: "eve", Role: Role("Auditor"), Email: "eve@company.com"}},
		Steps:   []StepTemplate{{StepID: 1, Header: "Initiation", StepName: "Call", RequiredRole: RequiredRole("Auditor"), AttachmentRequired: true}},
		Status:  []StatusRow{{UniqueID: 1000, StepID: 1, Status: Status("Blocked"), AttachmentPath: "a.pdf;b.pdf"}},
	}

	decoded := &Tables{}
	for _, table := range original.Encode() {
		rows := make([][]string, len(table.Rows))
		for i, row := range table.Rows {
			for _, v := range row {
				rows[i] = append(rows[i], cellString(v))
			}
		}
		if err := decoded.Decode(table.Name, table.Columns, rows); err != nil {
			t.Fatalf("Decode(%s) failed: %v", table.Name, err)
		}
	}

	if got := decoded.Records[0]; got.UniqueID != 1000 || !got.CreatedDate.Equal(created) || got.CreatedBy != "john.doe" {
		t.Errorf("record round trip mismatch: %+v", got)
	}
	if decoded.Users[0].Role != "Auditor" {
		t.Errorf("unknown role not preserved: %q", decoded.Users[0].Role)
	}
	if decoded.Steps[0].RequiredRole != "Auditor" || !decoded.Steps[0].AttachmentRequired {
		t.Errorf("step round trip mismatch: %+v", decoded.Steps[0])
	}
	if decoded.Status[0].Status != "Blocked" {
		t.Errorf("unknown status not preserved: %q", decoded.Status[0].Status)
	}
	if paths := decoded.Status[0].Attachments(); len(paths) != 2 {
		t.Errorf("expected 2 attachments, got %v", paths)
	}
}

func TestDecodeMatchesColumnsByName(t *testing.T) {
	tbl := &Tables{}
	header := []string{"Email", "Extra", "Username", "Role"}
	rows := [][]string{
		{"jane@company.com", "x", "jane.smith", "Manager"},
		{"", "", "", ""},
		{"bob@company.com", "", "bob.wilson"},
	}
	if err := tbl.Decode(UsersTable, header, rows); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(tbl.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(tbl.Users))
	}
	if tbl.Users[0].Username != "jane.smith" || tbl.Users[0].Role != RoleManager {
		t.Errorf("unexpected first user: %+v", tbl.Users[0])
	}
	if tbl.Users[1].Role != "" {
		t.Errorf("short row should decode missing cells as empty, got %q", tbl.Users[1].Role)
	}
}

func TestDecodeRejectsMalformedKeys(t *testing.T) {
	tbl := &Tables{}
	err := tbl.Decode(RecordsTable, Columns[RecordsTable], [][]string{{"abc", "Acme"}})
	if !errors.Is(err, kerrors.ErrStoreMissingOrCorrupt) {
		t.Fatalf("expected ErrStoreMissingOrCorrupt, got %v", err)
	}

	err = tbl.Decode(StepsTable, []string{"Header", "Step_Name"}, nil)
	if !errors.Is(err, kerrors.ErrStoreMissingOrCorrupt) {
		t.Fatalf("expected ErrStoreMissingOrCorrupt for missing key column, got %v", err)
	}
}

func cellString(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return x
	}
	return ""
}

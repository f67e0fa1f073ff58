package bootstrap

import "github.com/PolarWolf314/waypoint/internal/tables"

// SeedUsers returns the users written into a freshly created store.
func SeedUsers() []tables.User {
	return []tables.User{
		{Username: "admin", Role: tables.RoleLead, Email: "admin@company.com"},
		{Username: "john.doe", Role: tables.RoleDeveloper, Email: "john@company.com"},
		{Username: "jane.smith", Role: tables.RoleManager, Email: "jane@company.com"},
		{Username: "bob.wilson", Role: tables.RoleBusiness, Email: "bob@company.com"},
	}
}

// SeedSteps returns the default checklist written into a freshly created store.
func SeedSteps() []tables.StepTemplate {
	return []tables.StepTemplate{
		{StepID: 1, Header: "Initiation", StepName: "Identification call with ET along with impact and savings on the engagement, project code", RequiredRole: tables.RequireAny},
		{StepID: 2, Header: "Kickoff", StepName: "Data received and communication of objectives to be built", RequiredRole: tables.RequireAny},
		{StepID: 3, Header: "Development", StepName: "Development of analytical solution", RequiredRole: tables.RequireAny},
		{StepID: 4, Header: "Development", StepName: "Draft output shared with ET", RequiredRole: tables.RequireAny},
		{StepID: 5, Header: "Development", StepName: "Output confirmed by ET", RequiredRole: tables.RequireAny, AttachmentRequired: true},
		{StepID: 6, Header: "Review", StepName: "Workflow walkthrough with Lead", RequiredRole: tables.RequireLead},
		{StepID: 7, Header: "Testing", StepName: "Testing of the workflow", RequiredRole: tables.RequireAny},
		{StepID: 8, Header: "Testing", StepName: "Review and approval of testing document", RequiredRole: tables.RequireAny},
		{StepID: 9, Header: "Documentation", StepName: "Preparation of know your analytical solution documentation", RequiredRole: tables.RequireAny},
		{StepID: 10, Header: "Documentation", StepName: "Review of the documentation", RequiredRole: tables.RequireManager},
		{StepID: 11, Header: "Delivery", StepName: "Rolling out the email of Analytics and documentation", RequiredRole: tables.RequireManager},
		{StepID: 12, Header: "Methodology", StepName: "Methodology Approval", RequiredRole: tables.RequireLead, AttachmentRequired: true},
		{StepID: 13, Header: "Presentation", StepName: "Visualization of results and presentation", RequiredRole: tables.RequireAny, Optional: true},
	}
}

// Seed returns the full default contents of a new store.
func Seed() *tables.Tables {
	return &tables.Tables{
		Users: SeedUsers(),
		Steps: SeedSteps(),
	}
}

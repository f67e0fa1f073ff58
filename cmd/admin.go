package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/PolarWolf314/waypoint/internal/tables"
	"github.com/PolarWolf314/waypoint/internal/utils"
)

var adminJSON bool

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the Users and Steps tables",
	Long: `Lists, exports and imports the reference tables. Imports replace the
whole table and are limited to Lead and Manager users.

Documents are YAML:

  users:
    - username: admin
      role: Lead
      email: admin@company.com

  steps:
    - step_id: 1
      header: Initiation
      step_name: Identification call with ET
      required_role: Any
      attachment_required: false
      optional: false

Examples:
  waypoint admin users export users.yaml
  waypoint admin users import users.yaml --as admin
  cat steps.yaml | waypoint admin steps import - --as jane.smith`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List, import or export users",
}

var adminStepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List, import or export workflow steps",
}

func init() {
	adminCmd.PersistentFlags().BoolVar(&adminJSON, "json", false, "output in JSON format")

	adminUsersCmd.AddCommand(adminUsersListCmd)
	adminUsersCmd.AddCommand(adminUsersImportCmd)
	adminUsersCmd.AddCommand(adminUsersExportCmd)
	adminStepsCmd.AddCommand(adminStepsListCmd)
	adminStepsCmd.AddCommand(adminStepsImportCmd)
	adminStepsCmd.AddCommand(adminStepsExportCmd)

	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminStepsCmd)
}

func resetAdminState() {
	adminJSON = false
}

type usersDocument struct {
	Users []tables.User `yaml:"users"`
}

type stepsDocument struct {
	Steps []tables.StepTemplate `yaml:"steps"`
}

// readDocument reads a YAML document from path, or from stdin when path is "-".
// Unknown keys are rejected so typos do not silently drop columns.
func readDocument(path string, v any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = utils.ReadStdin()
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeDocument writes v as YAML to path, or to stdout when path is "" or "-".
func writeDocument(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return enc.Close()
}

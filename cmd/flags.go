package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/store"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// driverValue is a --driver flag restricted to the supported store drivers.
type driverValue string

var _ pflag.Value = (*driverValue)(nil)

func (d *driverValue) String() string { return string(*d) }

func (d *driverValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" && !slices.Contains(store.Drivers, s) {
		return fmt.Errorf("%w: %q (supported: %s)", kerrors.ErrUnknownDriver, s, strings.Join(store.Drivers, ", "))
	}
	*d = driverValue(s)
	return nil
}

func (d *driverValue) Type() string { return "driver" }

// statusValue is a --status flag that accepts the workflow statuses in any
// case, with - or _ in place of the space.
type statusValue tables.Status

var _ pflag.Value = (*statusValue)(nil)

func (s *statusValue) String() string { return string(*s) }

func (s *statusValue) Set(v string) error {
	st, err := tables.ParseStatus(v)
	if err != nil {
		return fmt.Errorf("%w (use one of: %s)", err, statusList())
	}
	*s = statusValue(st)
	return nil
}

func (s *statusValue) Type() string { return "status" }

func statusList() string {
	names := make([]string, len(tables.Statuses))
	for i, st := range tables.Statuses {
		names[i] = fmt.Sprintf("%q", st)
	}
	return strings.Join(names, ", ")
}

// resetFlagState restores every flag of cmd and its children to its default
// so repeated Execute calls in tests start clean.
func resetFlagState(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlagState(child)
	}
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/utils"
)

// startSpinner creates and starts a spinner with the given message. The
// spinner stays off in verbose or debug mode and when stdout is not a
// terminal. Returns the spinner and a function that should be deferred to
// clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")

	active := !verbose && !debug && utils.IsTerminal()
	if active {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if active {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if active {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal output to JSON: %v", err)
	}
	fmt.Println(string(output))
	return nil
}

// ReportError prints err with a hint on how to recover, when one is known.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, ui.Error.Sprint("✗")+" "+err.Error())
	if hint := hintFor(err); hint != "" {
		fmt.Fprintln(w, ui.Info.Sprint("→")+" "+hint)
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrPermissionDenied):
		return "Ask a user with the required role to make this change"
	case errors.Is(err, kerrors.ErrConflict):
		return "Someone else saved the store in the meantime. Run the command again to apply your change on top of theirs"
	case errors.Is(err, kerrors.ErrStoreMissingOrCorrupt):
		return "Run " + ui.Code.Sprint("waypoint init --force") + " to regenerate the store (the old file is backed up)"
	case errors.Is(err, kerrors.ErrUserNotFound):
		return "Pass " + ui.Flag.Sprint("--as <username>") + " or set WAYPOINT_USER; " + ui.Code.Sprint("waypoint admin users list") + " shows who exists"
	case errors.Is(err, kerrors.ErrInvalidStatus):
		return "Use one of: " + statusList()
	case errors.Is(err, kerrors.ErrUnknownDriver):
		return "Use " + ui.Flag.Sprint("--driver xlsx") + " or " + ui.Flag.Sprint("--driver sqlite")
	case errors.Is(err, kerrors.ErrPersistence):
		return "Check that the store file is not open in another program and that the directory is writable"
	default:
		return ""
	}
}

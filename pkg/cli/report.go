package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

// writeReport prints a human readable failure report. Status code and raw response
// body are included when the error carries them.
func writeReport(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	label := color.New(color.Bold)

	_, _ = red.Fprintf(w, "Error! %s\n", err.Error())

	values := map[string]any{}
	if e := goerr.Unwrap(err); e != nil {
		values = e.Values()
	}

	if status, ok := values["status"]; ok {
		_, _ = label.Fprint(w, "Status code: ")
		_, _ = fmt.Fprintln(w, status)
	}
	if body, ok := values["body"]; ok {
		_, _ = label.Fprintln(w, "Response:")
		_, _ = fmt.Fprintln(w, body)
	}

	_, _ = fmt.Fprintf(w, "Exiting with code %d\n", types.ExitCodeOf(err))
}

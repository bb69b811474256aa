// Package export renders conflict sweeps and assignment lists for
// coordinators who work outside the API, in JSON or spreadsheet-friendly
// CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/skyopshq/skyops/core/conflict"
	"github.com/skyopshq/skyops/core/model"
)

// WriteConflictsJSON writes the sweep result to w in JSON format.
func WriteConflictsJSON(w io.Writer, conflicts []conflict.Conflict) error {
	enc := json.NewEncoder(w)
	return enc.Encode(conflicts)
}

// WriteConflictsCSV writes the sweep result to w with sheet headers.
func WriteConflictsCSV(w io.Writer, conflicts []conflict.Conflict) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"kind", "severity", "project_id", "resources", "detail"}); err != nil {
		return err
	}
	for _, c := range conflicts {
		rec := []string{
			c.Kind.String(),
			c.Severity.String(),
			c.MissionID,
			strings.Join(c.ResourceIDs, ","),
			c.Detail,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAssignmentsCSV writes assignments to w with sheet headers.
func WriteAssignmentsCSV(w io.Writer, assignments []model.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"assignment_id", "project_id", "pilot_id", "drone_id", "start_date", "end_date", "void"}); err != nil {
		return err
	}
	for _, a := range assignments {
		rec := []string{
			a.ID,
			a.MissionID,
			a.PilotID,
			a.DroneID,
			a.Dates.Start.Format(model.DateLayout),
			a.Dates.End.Format(model.DateLayout),
			strconv.FormatBool(a.Void),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

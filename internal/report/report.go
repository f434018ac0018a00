// Package report formats the outcome of placement experiments.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Result is the outcome of relocating one candidate set of addresses.
type Result struct {
	Strategy  string `json:"strategy"`
	Start     uint64 `json:"start"`
	Relocated int    `json:"relocated"`
	Before    uint64 `json:"before"`
	After     uint64 `json:"after"`
}

// Improvement returns the relative reduction of seek distance, negative if
// the relocation made things worse.
func (r Result) Improvement() float64 {
	if r.Before == 0 {
		return 0
	}
	return (float64(r.Before) - float64(r.After)) / float64(r.Before)
}

// MarshalJSON adds the derived improvement to the encoded result.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		plain
		Improvement float64 `json:"improvement"`
	}{plain(r), r.Improvement()})
}

// Report describes one run over a trace.
type Report struct {
	RunID     uuid.UUID `json:"run_id"`
	Trace     string    `json:"trace"`
	TraceID   ID        `json:"trace_id"`
	Accesses  int       `json:"accesses"`
	Addresses int       `json:"addresses"`
	Distance  uint64    `json:"distance"`
	Results   []Result  `json:"results,omitempty"`
}

// New returns a report with a fresh run id.
func New(trace string, id ID) *Report {
	return &Report{
		RunID:   uuid.New(),
		Trace:   trace,
		TraceID: id,
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(r), "json.Encode")
}

// WriteText writes the report as a human readable table.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "trace\t%s (%s)\n", r.Trace, r.TraceID.Str())
	fmt.Fprintf(tw, "accesses\t%d\n", r.Accesses)
	fmt.Fprintf(tw, "addresses\t%d\n", r.Addresses)
	fmt.Fprintf(tw, "seek distance\t%d\n", r.Distance)

	if len(r.Results) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "strategy\tstart\trelocated\tbefore\tafter\timprovement")
		for _, res := range r.Results {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f%%\n",
				res.Strategy, res.Start, res.Relocated, res.Before, res.After, 100*res.Improvement())
		}
	}
	return errors.Wrap(tw.Flush(), "Flush")
}

// Write writes the report in the given format, "text" or "json".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		return r.WriteJSON(w)
	case "text", "":
		return r.WriteText(w)
	}
	return errors.Errorf("unknown format %q", format)
}

package scraper

import (
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"
)

// Result is the outcome of one endpoint in a run.
type Result struct {
	Success bool   `json:"success" yaml:"success"`
	Records int    `json:"records" yaml:"records"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	// StatusCode is set when the API answered with a non-2xx status.
	StatusCode int `json:"status_code,omitempty" yaml:"status_code,omitempty"`
}

// Report summarises one scrape run. It is built fresh per run and never stored.
type Report struct {
	RunID     string            `json:"run_id" yaml:"run_id"`
	StartDate string            `json:"start_date" yaml:"start_date"`
	EndDate   string            `json:"end_date" yaml:"end_date"`
	StartedAt time.Time         `json:"started_at" yaml:"started_at"`
	Duration  time.Duration     `json:"duration" yaml:"duration"`
	Endpoints map[string]Result `json:"endpoints" yaml:"endpoints"`

	order []string
}

func newReport(runID, start, end string, startedAt time.Time) *Report {
	return &Report{
		RunID:     runID,
		StartDate: start,
		EndDate:   end,
		StartedAt: startedAt,
		Endpoints: make(map[string]Result),
	}
}

func (r *Report) record(name string, res Result) {
	if _, seen := r.Endpoints[name]; !seen {
		r.order = append(r.order, name)
	}
	r.Endpoints[name] = res
}

// Names lists endpoints in the order they ran.
func (r *Report) Names() []string {
	return append([]string(nil), r.order...)
}

// Failed lists the endpoints that did not succeed, in run order.
func (r *Report) Failed() []string {
	var failed []string
	for _, name := range r.order {
		if !r.Endpoints[name].Success {
			failed = append(failed, name)
		}
	}
	return failed
}

// OK reports whether every endpoint succeeded.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Unauthorized reports whether any endpoint was refused with HTTP 401.
func (r *Report) Unauthorized() bool {
	for _, res := range r.Endpoints {
		if res.StatusCode == http.StatusUnauthorized {
			return true
		}
	}
	return false
}

// TotalRecords sums records across successful endpoints.
func (r *Report) TotalRecords() int {
	total := 0
	for _, res := range r.Endpoints {
		total += res.Records
	}
	return total
}

// WriteText renders the report as an aligned table.
func (r *Report) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Scrape %s: %s to %s (%s)\n\n", r.RunID, r.StartDate, r.EndDate, r.Duration.Round(time.Millisecond))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDPOINT\tSTATUS\tRECORDS\tERROR")
	for _, name := range r.order {
		res := r.Endpoints[name]
		status := "ok"
		if !res.Success {
			status = "FAILED"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", name, status, res.Records, res.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d records, %d of %d endpoints failed\n", r.TotalRecords(), len(r.Failed()), len(r.order))
	return err
}

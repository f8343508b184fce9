package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/jobsapi"
)

const defaultRequestTimeout = 30 * time.Second

type apiOptions struct {
	Timeout time.Duration
	BaseURL string
	JSON    bool
	Args    []string
}

func parseAPIFlags(name string, args []string, cmdCtx *commandContext) (apiOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := apiOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultRequestTimeout, "Maximum duration to wait for the jobs API")
	fs.StringVar(&opts.BaseURL, "api", cmdCtx.Config.JobsAPI.BaseURL, "Jobs API base URL (defaults to JOBS_API_BASE_URL)")
	fs.BoolVar(&opts.JSON, "json", false, "Print the raw JSON response")

	if err := fs.Parse(args); err != nil {
		return apiOptions{}, err
	}
	if opts.Timeout <= 0 {
		return apiOptions{}, errors.New("--timeout must be greater than zero")
	}
	opts.Args = fs.Args()
	return opts, nil
}

func newAPIClient(opts apiOptions) (*jobsapi.Client, error) {
	client, err := jobsapi.NewClient(jobsapi.Config{BaseURL: opts.BaseURL, Timeout: opts.Timeout})
	if err != nil {
		return nil, fmt.Errorf("create jobs api client: %w", err)
	}
	return client, nil
}

// withAPI parses the shared flags, builds a client and bounds the call.
func withAPI(
	cmdCtx *commandContext,
	name string,
	args []string,
	fn func(ctx context.Context, client *jobsapi.Client, opts apiOptions) error,
) error {
	opts, err := parseAPIFlags(name, args, cmdCtx)
	if err != nil {
		return err
	}
	client, err := newAPIClient(opts)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()
	return fn(ctx, client, opts)
}

func runList(cmdCtx *commandContext, args []string) error {
	return withAPI(cmdCtx, "list", args, func(ctx context.Context, client *jobsapi.Client, opts apiOptions) error {
		jobs, err := client.FetchAll(ctx)
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		if opts.JSON {
			return writeJSON(cmdCtx.Out, jobs)
		}
		return renderJobTable(cmdCtx.Out, jobs)
	})
}

func runShow(cmdCtx *commandContext, args []string) error {
	return withAPI(cmdCtx, "show", args, func(ctx context.Context, client *jobsapi.Client, opts apiOptions) error {
		if len(opts.Args) != 1 || opts.Args[0] == "" {
			return errors.New("usage: jobboard-admin show [flags] <jobviteId>")
		}
		job, err := client.FetchOne(ctx, opts.Args[0])
		if err != nil {
			return fmt.Errorf("fetch job %q: %w", opts.Args[0], err)
		}
		if opts.JSON {
			return writeJSON(cmdCtx.Out, job)
		}
		return renderJob(cmdCtx.Out, job)
	})
}

func runSync(cmdCtx *commandContext, args []string) error {
	return withAPI(cmdCtx, "sync", args, func(ctx context.Context, client *jobsapi.Client, opts apiOptions) error {
		res, err := client.TriggerSync(ctx)
		if err != nil {
			return fmt.Errorf("trigger sync: %w", err)
		}
		if opts.JSON {
			return writeJSON(cmdCtx.Out, res)
		}
		return renderSyncResult(cmdCtx.Out, res)
	})
}

func runSyncStatus(cmdCtx *commandContext, args []string) error {
	return withAPI(cmdCtx, "sync-status", args, func(ctx context.Context, client *jobsapi.Client, opts apiOptions) error {
		st, err := client.SyncStatus(ctx)
		if err != nil {
			if jobsapi.StatusCode(err) == http.StatusNotFound {
				return writeln(cmdCtx.Out, "No sync run recorded yet.")
			}
			return fmt.Errorf("fetch sync status: %w", err)
		}
		if opts.JSON {
			return writeJSON(cmdCtx.Out, st)
		}
		return renderSyncStatus(cmdCtx.Out, st)
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func renderJobTable(w io.Writer, jobs *model.JobCollection) error {
	if jobs.Len() == 0 {
		return writeln(w, "(no postings)")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tTITLE\tCLASSIFICATION"); err != nil {
		return fmt.Errorf("write jobs header row: %w", err)
	}
	for _, job := range jobs.Jobs {
		if err := writef(tw, "%s\t%s\t%s\n", job.ID, job.Title, dash(job.Classification())); err != nil {
			return fmt.Errorf("write jobs row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush jobs table: %w", err)
	}

	return writef(w, "\nTotal: %d  Last updated: %s\n", jobs.Len(), dash(jobs.LastUpdated))
}

func renderJob(w io.Writer, job *model.JobPosting) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", job.ID},
		{"Title", job.Title},
		{"Sector", dash(job.Sector)},
		{"Work mode", dash(job.WorkMode)},
		{"Country", dash(job.Country)},
	}
	for _, row := range rows {
		if err := writef(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return fmt.Errorf("write job field: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush job fields: %w", err)
	}
	if job.Description == "" {
		return nil
	}
	return writef(w, "\n%s\n", job.Description)
}

func renderSyncResult(w io.Writer, res *model.SyncResult) error {
	switch res.Status {
	case model.SyncStarted:
		started := "-"
		if res.StartedAt != nil {
			started = formatTimestamp(*res.StartedAt)
		}
		return writef(w, "Sync started: run %s at %s\n", res.RunID, started)
	case model.SyncAlreadyRunning:
		return writef(w, "A sync run is already in progress. %s\n", res.Message)
	default:
		return writef(w, "Sync status: %s %s\n", res.Status, res.Message)
	}
}

func renderSyncStatus(w io.Writer, st *model.SyncStatus) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	finished := "-"
	duration := "-"
	if st.FinishedAt != nil {
		finished = formatTimestamp(*st.FinishedAt)
		duration = st.Duration().Round(time.Millisecond).String()
	}
	rows := [][2]string{
		{"Run", st.RunID},
		{"State", string(st.State)},
		{"Trigger", dash(st.Trigger)},
		{"Started (UTC)", formatTimestamp(st.StartedAt)},
		{"Finished (UTC)", finished},
		{"Duration", duration},
		{"Jobs", fmt.Sprint(st.JobCount)},
	}
	if st.Error != "" {
		rows = append(rows, [2]string{"Error", st.Error})
	}
	for _, row := range rows {
		if err := writef(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return fmt.Errorf("write sync status field: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush sync status: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"
	"simhire-backend/pkg/client"
)

func vocabulary(kind string) (domain.Vocabulary, error) {
	switch kind {
	case "job":
		return domain.JobVocabulary, nil
	case "internship":
		return domain.InternshipVocabulary, nil
	}
	return domain.Vocabulary{}, fmt.Errorf("unknown kind %q (job or internship)", kind)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func handleApplicants(ctx context.Context, api *client.Client, args []string, w io.Writer) error {
	fs := newFlagSet("applicants")
	kind := fs.String("kind", "job", "job or internship")
	stage := fs.String("stage", "", "only this stage")
	posting := fs.String("posting", "", "only this job or internship id")
	query := fs.String("q", "", "text in name, email or skills")
	minGPA := fs.Float64("min-gpa", -1, "minimum GPA (internships)")
	university := fs.String("university", "", "university contains")
	if err := fs.Parse(args); err != nil {
		return err
	}

	vocab, err := vocabulary(*kind)
	if err != nil {
		return err
	}
	filter := domain.ApplicationFilter{JobID: *posting, TextQuery: *query, University: *university}
	if *stage != "" {
		if filter.Stage, err = vocab.Parse(*stage); err != nil {
			return err
		}
	}
	if *minGPA >= 0 {
		v := *minGPA
		filter.MinGPA = &v
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var shown, total int
	if *kind == "job" {
		items, err := pipeline.NewSnapshot(client.CompanyApplicationsLoader(api, domain.ApplicationFilter{})).Get(ctx)
		if err != nil {
			return err
		}
		rows := pipeline.Filter(items, filter)
		fmt.Fprintln(tw, "ID\tCANDIDATE\tEMAIL\tSTAGE\tAPPLIED")
		for _, a := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.CandidateName, a.CandidateEmail, vocab.LabelOf(a.Stage), a.AppliedDate.Format("2006-01-02"))
		}
		shown, total = len(rows), len(items)
	} else {
		items, err := pipeline.NewSnapshot(client.CompanyInternshipApplicationsLoader(api, domain.ApplicationFilter{})).Get(ctx)
		if err != nil {
			return err
		}
		rows := pipeline.Filter(items, filter)
		fmt.Fprintln(tw, "ID\tCANDIDATE\tUNIVERSITY\tGPA\tSTAGE\tAPPLIED")
		for _, a := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.CandidateName, a.University, pipeline.FormatGPA(a.GPAValue), vocab.LabelOf(a.Stage), a.AppliedDate.Format("2006-01-02"))
		}
		shown, total = len(rows), len(items)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d of %d applicants\n", shown, total)
	return nil
}

func printStageCounts(w io.Writer, rows []domain.StageCount) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tCOUNT\tSHARE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d%%\n", r.Label, r.Count, r.Percentage)
	}
	return tw.Flush()
}

func handleStats(ctx context.Context, api *client.Client, args []string, w io.Writer) error {
	fs := newFlagSet("stats")
	kind := fs.String("kind", "job", "job or internship")
	if err := fs.Parse(args); err != nil {
		return err
	}
	vocab, err := vocabulary(*kind)
	if err != nil {
		return err
	}

	if *kind == "job" {
		env, err := api.CompanyApplications(ctx, domain.ApplicationFilter{})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Applicants: %d\n\n", len(env.Data))
		if err := printStageCounts(w, pipeline.StageCounts(vocab, env.Data)); err != nil {
			return err
		}
		scores := make([]*float64, len(env.Data))
		for i := range env.Data {
			scores[i] = env.Data[i].Score
		}
		fmt.Fprintf(w, "\nAverage score: %.1f\n", pipeline.AverageScore(scores))
		return nil
	}

	env, err := api.CompanyInternshipApplications(ctx, domain.ApplicationFilter{})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Applicants: %d\n\n", len(env.Data))
	if err := printStageCounts(w, pipeline.StageCounts(vocab, env.Data)); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nAverage GPA: %s\n", pipeline.FormatGPA(pipeline.AverageGPA(env.Data)))
	for _, u := range pipeline.CountByUniversity(env.Data) {
		fmt.Fprintf(w, "  %s: %d\n", u.University, u.Count)
	}
	return nil
}

func handleLeaderboard(ctx context.Context, api *client.Client, args []string, w io.Writer) error {
	fs := newFlagSet("leaderboard")
	category := fs.String("category", "", "simulasi category id")
	limit := fs.Int("limit", 10, "entries to show (1-100)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*category) == "" {
		return errors.New("leaderboard requires -category")
	}

	env, err := api.Leaderboard(ctx, *category, *limit)
	if err != nil {
		return err
	}
	board := env.Data
	fmt.Fprintf(w, "%s: %d participants, average %d%%\n\n", board.CategoryID, board.Participants, board.AveragePercentage)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tSCORE\tGRADE\tBADGE")
	for _, e := range pipeline.Rerank(board.Entries) {
		badge := "-"
		if e.Badge != nil {
			badge = *e.Badge
		}
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%s\t%s\n", e.Rank, e.UserName, e.Percentage, pipeline.RankLetter(float64(e.Percentage)), badge)
	}
	return tw.Flush()
}

func handleBulkStatus(ctx context.Context, api *client.Client, args []string, w io.Writer) error {
	fs := newFlagSet("bulk-status")
	kind := fs.String("kind", "job", "job or internship")
	stageFlag := fs.String("stage", "", "target stage")
	if err := fs.Parse(args); err != nil {
		return err
	}
	vocab, err := vocabulary(*kind)
	if err != nil {
		return err
	}
	ids := fs.Args()
	if len(ids) == 0 {
		return errors.New("bulk-status requires at least one application id")
	}
	stage := domain.Stage(strings.ToLower(strings.TrimSpace(*stageFlag)))

	if *kind == "job" {
		snap := pipeline.NewSnapshot(client.CompanyApplicationsLoader(api, domain.ApplicationFilter{}))
		tr := pipeline.NewTransitioner(vocab, client.JobApplicationWriter{Client: api}, snap)
		return bulkStatus(ctx, w, tr, snap, vocab, ids, stage)
	}
	snap := pipeline.NewSnapshot(client.CompanyInternshipApplicationsLoader(api, domain.ApplicationFilter{}))
	tr := pipeline.NewTransitioner(vocab, client.InternshipApplicationWriter{Client: api}, snap)
	return bulkStatus(ctx, w, tr, snap, vocab, ids, stage)
}

func bulkStatus[T pipeline.Staged](ctx context.Context, w io.Writer, tr *pipeline.Transitioner, snap *pipeline.Snapshot[T], vocab domain.Vocabulary, ids []string, stage domain.Stage) error {
	result, err := tr.BulkTransition(ctx, ids, stage)
	if result == nil {
		return err
	}

	fmt.Fprintf(w, "Moved %d of %d applications to %s\n", len(result.Succeeded), len(ids), tr.LabelOf(stage))

	var bulkErr *pipeline.BulkError
	if errors.As(err, &bulkErr) {
		failed := make([]string, 0, len(bulkErr.Failed))
		for id := range bulkErr.Failed {
			failed = append(failed, id)
		}
		sort.Strings(failed)
		for _, id := range failed {
			fmt.Fprintf(w, "  %s: %v\n", id, bulkErr.Failed[id])
		}
	}

	if !snap.Stale() {
		fmt.Fprintln(w)
		if perr := printStageCounts(w, pipeline.StageCounts(vocab, snap.Items())); perr != nil {
			return perr
		}
	}
	return err
}

package main

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/fencecalc/internal/model"
	"github.com/piwi3910/fencecalc/internal/project"
	"go.uber.org/zap"
)

type jobsOptions struct {
	show   string
	remove string
	dup    string
	rename string
	name   string
	output outputOptions
}

// listJobs lists the saved jobs, or performs one action on a job chosen by
// ID or name: -show, -rm, -dup or -rename.
func (a *app) listJobs(args []string) error {
	var opts jobsOptions
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	fs.StringVar(&opts.show, "show", "", "Recompute and print a saved job (ID or name)")
	fs.StringVar(&opts.remove, "rm", "", "Delete a saved job (ID or name)")
	fs.StringVar(&opts.dup, "dup", "", "Copy a saved job under -name (ID or name)")
	fs.StringVar(&opts.rename, "rename", "", "Rename a saved job to -name (ID or name)")
	fs.StringVar(&opts.name, "name", "", "New job name for -dup and -rename")
	opts.output.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	actions := 0
	for _, v := range []string{opts.show, opts.remove, opts.dup, opts.rename} {
		if v != "" {
			actions++
		}
	}
	if actions > 1 {
		return fmt.Errorf("use only one of -show, -rm, -dup, -rename")
	}

	store, err := project.LoadJobs(a.jobsPath())
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}

	switch {
	case opts.show != "":
		return a.showJob(&store, opts.show, opts.output)
	case opts.remove != "":
		return a.removeJob(&store, opts.remove)
	case opts.dup != "":
		return a.duplicateJob(&store, opts.dup, opts.name)
	case opts.rename != "":
		return a.renameJob(&store, opts.rename, opts.name)
	}

	if opts.output.asJSON {
		return writeJSON(a.out, store.Jobs)
	}
	if len(store.Jobs) == 0 {
		fmt.Fprintln(a.out, "No saved jobs.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tCustomer\tRuns\tFootage\tUpdated")
	for _, job := range store.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.1f\t%s\n", job.ID, job.Name, job.Customer,
			len(job.Input.Runs), model.TotalLength(job.Input.Runs), job.UpdatedAt)
	}
	return tw.Flush()
}

// findJob resolves ref as an ID first, then as a name.
func findJob(store *model.JobStore, ref string) (*model.FenceJob, error) {
	if job := store.FindByID(ref); job != nil {
		return job, nil
	}
	if job := store.FindByName(ref); job != nil {
		return job, nil
	}
	names := store.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("job %q not found: no saved jobs", ref)
	}
	return nil, fmt.Errorf("job %q not found (saved jobs: %s)", ref, strings.Join(names, ", "))
}

func (a *app) showJob(store *model.JobStore, ref string, o outputOptions) error {
	job, err := findJob(store, ref)
	if err != nil {
		return err
	}
	if err := a.report(*job, job.Estimate(), nil, o); err != nil {
		return err
	}
	return a.touchRecent(job.ID)
}

func (a *app) removeJob(store *model.JobStore, ref string) error {
	job, err := findJob(store, ref)
	if err != nil {
		return err
	}
	id, name := job.ID, job.Name
	store.Remove(id)
	if err := a.storeJobs(*store); err != nil {
		return err
	}

	recent := a.config.RecentJobs[:0:0]
	for _, r := range a.config.RecentJobs {
		if r != id {
			recent = append(recent, r)
		}
	}
	if len(recent) != len(a.config.RecentJobs) {
		a.config.RecentJobs = recent
		if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	a.log.Info("Job removed", zap.String("id", id), zap.String("name", name))
	fmt.Fprintf(a.out, "Removed %s (%s)\n", name, id)
	return nil
}

func (a *app) duplicateJob(store *model.JobStore, ref, name string) error {
	if name == "" {
		return fmt.Errorf("-dup requires -name")
	}
	found, err := findJob(store, ref)
	if err != nil {
		return err
	}
	src := *found
	dup := src.Duplicate(name)
	store.Add(dup)
	if err := a.storeJobs(*store); err != nil {
		return err
	}
	if err := a.touchRecent(dup.ID); err != nil {
		return err
	}
	a.log.Info("Job duplicated", zap.String("from", src.ID), zap.String("id", dup.ID), zap.String("name", dup.Name))
	fmt.Fprintf(a.out, "Copied %s to %s (%s)\n", src.Name, dup.Name, dup.ID)
	return nil
}

func (a *app) renameJob(store *model.JobStore, ref, name string) error {
	if name == "" {
		return fmt.Errorf("-rename requires -name")
	}
	job, err := findJob(store, ref)
	if err != nil {
		return err
	}
	renamed := *job
	renamed.Name = name
	if !store.Update(renamed) {
		return fmt.Errorf("job %s disappeared from the store", renamed.ID)
	}
	if err := a.storeJobs(*store); err != nil {
		return err
	}
	a.log.Info("Job renamed", zap.String("id", renamed.ID), zap.String("name", name))
	fmt.Fprintf(a.out, "Renamed %s to %s\n", renamed.ID, name)
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"roster-service/internal/app/drivers/logger"
	"roster-service/internal/app/models"
	"roster-service/internal/app/services/core/coverages"
	"roster-service/internal/app/services/core/plans"
	"roster-service/internal/pkg/coverage"
	"roster-service/internal/pkg/planfile"
	"roster-service/internal/pkg/roster"
	"roster-service/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

const DESCRIPTION = `Expands a weekly staffing plan into a per agent, per day roster using
the 24 hour coverage masks of each shift code. The same coverage file
is read by the HTTP service.`

var (
	errMissingPlan   = errors.New("--plan is required")
	errMissingSecret = errors.New("--secret is required")
	errEmptyPlan     = errors.New("plan has no rows")
)

// runner holds what every command needs. Tests swap the filesystem and
// the writers.
type runner struct {
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
	log    *logrus.Logger
	now    func() time.Time
}

func Execute(args []string, fs afero.Fs) error {
	return newApp(&runner{fs: fs, out: os.Stdout, errOut: os.Stderr, now: time.Now}).Run(args)
}

func newApp(r *runner) *cli.App {
	version := Version
	if Tag != "" {
		version = fmt.Sprintf("%s-%s", Version, Tag)
	}

	coverageFlag := cli.StringFlag{
		Name:   "coverage, c",
		Usage:  "coverage table file",
		Value:  "coverage.yaml",
		EnvVar: "COVERAGE_FILE_PATH",
	}

	app := cli.NewApp()
	app.Name = "roster"
	app.HelpName = "roster"
	app.Usage = "expand staffing plans into daily rosters"
	app.UsageText = "roster [global options] <command> [arguments...]"
	app.Description = DESCRIPTION
	app.Version = version
	app.Writer = r.out
	app.ErrWriter = r.errOut
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log debug output",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "log as JSON",
		},
	}
	app.Before = func(c *cli.Context) error {
		r.log = logger.NewLogrusLogger(r.errOut, c.Bool("verbose"), c.Bool("json"))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "expand",
			Aliases:   []string{"e"},
			Usage:     "expand a plan file into a roster file",
			UsageText: "roster expand --plan plan.xlsx [--coverage coverage.yaml] [--format xlsx|csv] [--out DIR]",
			Action:    r.expand,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "plan, p",
					Usage: "staffing plan, xlsx or csv",
				},
				coverageFlag,
				cli.StringFlag{
					Name:  "format, f",
					Usage: "roster format, xlsx or csv",
					Value: planfile.FormatXLSX,
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "directory the roster is written to",
					Value: ".",
				},
				cli.StringFlag{
					Name:   "locale, l",
					Usage:  "day and header language, en or es",
					Value:  "en",
					EnvVar: "EXPORT_LOCALE",
				},
			},
		},
		{
			Name:      "resolve",
			Aliases:   []string{"r"},
			Usage:     "print the working window and break of shift codes",
			UsageText: "roster resolve [--coverage coverage.yaml] [CODE...]",
			Action:    r.resolve,
			Flags:     []cli.Flag{coverageFlag},
		},
		{
			Name:      "token",
			Usage:     "sign an admin token for the coverage endpoints",
			UsageText: "roster token --secret SECRET [--subject NAME] [--hours N]",
			Action:    r.token,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "subject, s",
					Usage: "token subject",
					Value: "admin",
				},
				cli.StringFlag{
					Name:   "secret",
					Usage:  "signing secret of the service",
					EnvVar: "JWT_SECRET",
				},
				cli.IntFlag{
					Name:  "hours",
					Usage: "hours until the token expires",
					Value: 24,
				},
			},
		},
	}
	return app
}

// loadResolver reads the coverage file. Codes with a broken mask are
// skipped with a warning, like the service does.
func (r *runner) loadResolver(ctx context.Context, path string) (*coverage.Resolver, []string, error) {
	all, err := coverages.NewCoverageFileRepository(r.fs, path).FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	table, invalid := models.CoverageTable(all)
	for _, code := range invalid {
		r.log.WithField("shift_code", code).Warn("skipping shift with invalid coverage mask")
	}

	codes := make([]string, 0, len(all))
	for _, each := range all {
		codes = append(codes, each.Code)
	}
	r.log.WithFields(logrus.Fields{"file": path, "shifts": len(table)}).Debug("coverage table loaded")
	return coverage.NewResolver(table), codes, nil
}

func (r *runner) expand(c *cli.Context) error {
	planPath := c.String("plan")
	if planPath == "" {
		return errMissingPlan
	}

	resolver, _, err := r.loadResolver(context.Background(), c.String("coverage"))
	if err != nil {
		return err
	}

	f, err := r.fs.Open(planPath)
	if err != nil {
		return err
	}
	defer f.Close()

	rawRows, err := planfile.ReadPlan(planPath, f)
	if err != nil {
		return fmt.Errorf("read %s: %w", planPath, err)
	}
	if len(rawRows) == 0 {
		return errEmptyPlan
	}
	rows, err := plans.RowsFromPlan(rawRows)
	if err != nil {
		return err
	}

	labels := roster.LabelsFor(c.String("locale"))
	records := roster.NewExpander(resolver, labels).Expand(rows)
	document, err := planfile.Write(records, labels, c.String("format"), r.now())
	if err != nil {
		return err
	}

	outDir := c.String("out")
	if err := r.fs.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	target := filepath.Join(outDir, document.FileName)
	if err := afero.WriteFile(r.fs, target, document.Body, 0o644); err != nil {
		return err
	}

	summary := roster.Summarize(records)
	r.log.WithFields(logrus.Fields{
		"file":    target,
		"rows":    len(rows),
		"agents":  summary.Agents,
		"records": summary.Records,
	}).Info("roster written")
	fmt.Fprintln(r.out, target)
	return nil
}

// resolve prints one tab separated line per code. Without codes every
// shift of the table is printed.
func (r *runner) resolve(c *cli.Context) error {
	resolver, codes, err := r.loadResolver(context.Background(), c.String("coverage"))
	if err != nil {
		return err
	}
	if c.NArg() > 0 {
		codes = c.Args()
	}

	for _, code := range codes {
		resolution := resolver.Resolve(code)
		fmt.Fprintf(r.out, "%s\t%s\t%s\n", code, resolution.WindowLabel(), resolution.BreakLabel())
	}
	return nil
}

func (r *runner) token(c *cli.Context) error {
	secret := c.String("secret")
	if secret == "" {
		return errMissingSecret
	}

	token, err := utils.GenerateAdminJWT(c.String("subject"), secret, c.Int("hours"))
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, token)
	return nil
}

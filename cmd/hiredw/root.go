package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	service "github.com/okian/hiredw/internal/app"
	"github.com/okian/hiredw/internal/config"
	"github.com/okian/hiredw/pkg/logger"
)

// cli holds state shared by every subcommand.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	csvPath    string
	dbPath     string
	schemaPath string
	outDir     string
	logLevel   string
	logFormat  string
	workers    int

	cfg *config.Config
	log logger.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "hiredw",
		Short:         "Hiring-candidate ETL into a SQLite star schema, plus KPIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.configPath, "config", "", "YAML config file (default $HIREDW_CONFIG)")
	f.StringVar(&c.csvPath, "csv", "", "candidate input file")
	f.StringVar(&c.dbPath, "db", "", "SQLite warehouse file")
	f.StringVar(&c.schemaPath, "schema", "", "warehouse DDL script (default: built-in schema)")
	f.StringVar(&c.outDir, "out", "", "output directory for KPI exports and the run summary")
	f.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&c.logFormat, "log-format", "", "text or json")
	f.IntVar(&c.workers, "workers", 0, "transform workers (default: one per CPU)")

	root.AddCommand(
		c.newETLCmd(),
		c.newKPICmd(),
		c.newRunCmd(),
		c.newServeCmd(),
		c.newGenerateCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and initializes logging.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context(), c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("csv", &cfg.CSVPath, c.csvPath)
	override("db", &cfg.DBPath, c.dbPath)
	override("schema", &cfg.SchemaPath, c.schemaPath)
	override("out", &cfg.OutDir, c.outDir)
	override("log-level", &cfg.LogLevel, c.logLevel)
	override("log-format", &cfg.LogFormat, c.logFormat)
	if flags.Changed("workers") {
		cfg.Workers = c.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.InitWithWriter(c.stderr, cfg.LogFormat); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	c.cfg = cfg
	c.log = logger.Get()
	return nil
}

func (c *cli) newService() (*service.Service, error) {
	return service.New(c.cfg, service.WithLogger(c.log))
}

func (c *cli) newETLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "etl",
		Short: "Extract, transform and load the candidate file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.newService()
			if err != nil {
				return err
			}
			run, err := svc.ETL(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "run %s: %d rows read, %d defects, %d hired, %d facts loaded\n",
				run.ID, run.Stats.RowsRead, len(run.Defects), run.Stats.Hired, run.Stats.Load.Facts)
			return nil
		},
	}
}

func (c *cli) newKPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kpi",
		Short: "Compute every KPI and export CSV files and a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.newService()
			if err != nil {
				return err
			}
			run, err := svc.KPI(cmd.Context())
			if err != nil {
				return err
			}
			c.printFiles(run)
			return nil
		},
	}
}

func (c *cli) newRunCmd() *cobra.Command {
	var rebuild bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optionally rebuild the warehouse, then compute and export KPIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.newService()
			if err != nil {
				return err
			}
			run, err := svc.RunAll(cmd.Context(), rebuild)
			if err != nil {
				return err
			}
			c.printFiles(run)
			return nil
		},
	}
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "run the ETL before computing KPIs")
	return cmd
}

func (c *cli) printFiles(run *service.Run) {
	fmt.Fprintf(c.stdout, "run %s: %d kpis\n", run.ID, len(run.Tables))
	for _, f := range run.Files {
		fmt.Fprintln(c.stdout, f)
	}
}

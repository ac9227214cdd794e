package maxout

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	apppaths "github.com/saadjs/maxout/internal/app"
	"github.com/saadjs/maxout/internal/config"
	"github.com/saadjs/maxout/internal/db"
	"github.com/saadjs/maxout/internal/logging"
	"github.com/saadjs/maxout/internal/service"
)

// app is the state shared by every command tree built for one process. The
// shell builds a new tree per line over the same app, so the session and
// everything logged into it live until the process exits.
type app struct {
	configPath string
	logLevel   string

	cfg         *config.Config
	db          *sql.DB
	session     *service.Session
	sessionOpts []service.SessionOption
	inShell     bool
}

func newApp(opts ...service.SessionOption) *app {
	return &app{sessionOpts: opts}
}

// ensureSession loads configuration, sets up logging and opens the session
// on first use.
func (a *app) ensureSession(ctx context.Context) error {
	if a.session != nil {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logFile := cfg.Log.File
	if logFile == "" && cfg.Log.FileOnly {
		if logFile, err = apppaths.DefaultLogPath(); err != nil {
			return err
		}
	}
	if logFile != "" {
		if err := apppaths.EnsureDir(logFile); err != nil {
			return err
		}
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   logFile,
		LogToStdout:   !cfg.Log.FileOnly,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.Format == "json",
	})

	sqldb, err := db.OpenSession()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	a.cfg = cfg
	a.db = sqldb
	a.session = service.NewSession(sqldb, a.sessionOpts...)

	if cfg.Session.DemoData {
		if err := seedDemo(ctx, a.session); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	log.WithField("demo_data", cfg.Session.DemoData).Debug("session opened")
	return nil
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		log.Warnf("close session database: %s", err)
	}
	a.db = nil
	a.session = nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "maxout",
		Short:         "maxout tracks workouts, weight, calories and achievements",
		Long:          "maxout is a personal fitness tracker: log body weight and calories, complete workout plans, chat with a scripted trainer and earn achievements along the way.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.ensureSession(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", a.configPath, "Path to YAML config (default $MAXOUT_CONFIG or ./maxout.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", a.logLevel, "Log level: trace|debug|info|warn|error")

	rootCmd.AddCommand(
		newWeightCmd(a),
		newFoodCmd(a),
		newWorkoutCmd(a),
		newStrengthCmd(a),
		newAchievementsCmd(a),
		newChatCmd(a),
		newMotivateCmd(a),
		newProfileCmd(a),
		newTodayCmd(a),
		newExportCmd(a),
		newShellCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func Execute() {
	a := newApp()
	defer a.close()

	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		a.close()
		os.Exit(1)
	}
}

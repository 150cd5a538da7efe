package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/younsl/ebs-autosnap/internal/models"
	"github.com/younsl/ebs-autosnap/internal/version"
	"github.com/younsl/ebs-autosnap/pkg/aws"
	"github.com/younsl/ebs-autosnap/pkg/backup"
	"github.com/younsl/ebs-autosnap/pkg/config"
	"github.com/younsl/ebs-autosnap/pkg/formatter"
	"github.com/younsl/ebs-autosnap/pkg/logging"
	"github.com/younsl/ebs-autosnap/pkg/utils"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ebs-autosnap [all]",
		Short: "Snapshot EBS volumes and expire old automated snapshots",
		Long: `ebs-autosnap snapshots the EBS volumes attached to this instance, tags each
snapshot with CreatedBy=AutomatedBackup and deletes tagged snapshots older
than the retention window. Pass "all" to cover every volume in the region.

Snapshots without the CreatedBy=AutomatedBackup tag are never deleted.`,
		Version:       version.Get().String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), models.ParseScope(args))
		},
	}

	config.BindFlags(rootCmd.Flags())
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}

	var logged loggedError
	if errors.As(err, &logged) || !reportFatal(rootCmd.Flags(), err) {
		fmt.Fprintln(os.Stderr, err)
	}
	if errors.Is(err, models.ErrPrerequisite) {
		os.Exit(models.ExitPrerequisite)
	}
	os.Exit(1)
}

// loggedError marks an error that run already wrote to the log
type loggedError struct{ error }

func (e loggedError) Unwrap() error { return e.error }

// reportFatal writes an error raised before the run logger existed to stderr
// and the log file. It returns false when the log file cannot be opened.
func reportFatal(fs *pflag.FlagSet, err error) bool {
	logger, openErr := logging.New(logging.Options{
		FilePath: config.LogFileFor(fs),
		MaxLines: config.DefaultLogMaxLines,
		Console:  os.Stderr,
	})
	if openErr != nil {
		return false
	}
	defer logger.Close()

	logger.Error("run aborted", zap.Error(err))
	return true
}

// run executes one backup run. Only setup failures are returned; per-volume
// failures end up in the log and the summary.
func run(ctx context.Context, fs *pflag.FlagSet, scope models.Scope) error {
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		FilePath: cfg.LogFile,
		MaxLines: cfg.LogMaxLines,
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	region, source := aws.ResolveRegion(ctx, cfg.Region, aws.NewMetadataClient())
	if !utils.IsValidRegion(region) {
		logger.Warn("region is not a known AWS region, continuing anyway", zap.String("region", region))
	}
	cfg.Region = region
	logger.Info("region resolved", zap.String("region", region), zap.String("source", source))

	awsCfg, err := aws.LoadConfig(ctx, region)
	if err != nil {
		logger.Error("unable to load AWS configuration", zap.Error(err))
		return loggedError{fmt.Errorf("%w: %w", models.ErrPrerequisite, err)}
	}

	if err := aws.CheckCredentials(ctx, awsCfg); err != nil {
		logger.Error("AWS credentials are not available", zap.Error(err))
		return loggedError{err}
	}

	runner := backup.NewRunner(cfg, aws.NewEC2Client(awsCfg), logger.Logger)
	summary := runner.Run(ctx, scope)

	formatter.PrintRunSummary(logger.Output, summary, time.Now())

	if cfg.MetricsNamespace != "" {
		publisher := aws.NewMetricsPublisher(awsCfg, cfg.MetricsNamespace)
		if err := publisher.Publish(ctx, summary); err != nil {
			logger.Warn("unable to publish run metrics", zap.Error(err))
		} else {
			logger.Info("run metrics published", zap.String("namespace", cfg.MetricsNamespace))
		}
	}

	return nil
}

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uiplatform/sidebar-cleanup/internal/cleanup"
	"github.com/uiplatform/sidebar-cleanup/internal/config"
	"github.com/uiplatform/sidebar-cleanup/internal/db"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the cleanup pipeline",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func runCleanup(cmd *cobra.Command, args []string) error {
	dsn, errDSN := cfg.ResolveDSN(flagDSN)
	if errDSN != nil {
		return errDSN
	}
	field := targetField()

	log.Infof("connecting to database %s", config.MaskDSN(dsn))
	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		return errOpen
	}
	defer func() {
		if errClose := db.Close(conn); errClose != nil {
			log.WithError(errClose).Warn("close database")
		}
	}()

	runner, errRunner := cleanup.NewRunner(conn, field, flagDryRun)
	if errRunner != nil {
		return errRunner
	}

	if flagDryRun {
		log.Info("dry run: no writes will be issued")
	}
	report, errRun := runner.Run(cmd.Context())
	if errRun != nil {
		return errRun
	}

	log.Infof("successfully updated %d of %d configurations (%d unchanged)", report.Updated, report.Total, report.Skipped)
	reportVerification(field, report.Remaining)
	if report.Sample != "" {
		fmt.Println("sample cleaned item structure:")
		fmt.Println(report.Sample)
	}
	return nil
}

// reportVerification logs the verification outcome. Leftovers are a warning,
// not a failure.
func reportVerification(field string, remaining int64) {
	if remaining == 0 {
		log.Infof("verification passed: no %s fields remain", field)
		return
	}
	log.Warnf("%d configurations still contain %s fields", remaining, field)
}

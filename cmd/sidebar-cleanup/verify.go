package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uiplatform/sidebar-cleanup/internal/cleanup"
	"github.com/uiplatform/sidebar-cleanup/internal/config"
	"github.com/uiplatform/sidebar-cleanup/internal/db"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check for residual fields without writing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		runner, errRunner := cleanup.NewRunner(conn, field, true)
		if errRunner != nil {
			return errRunner
		}

		remaining, errVerify := runner.Verify(cmd.Context())
		if errVerify != nil {
			return errVerify
		}
		reportVerification(field, remaining)

		sample, errSample := runner.Sample(cmd.Context())
		if errSample != nil {
			return errSample
		}
		if sample != "" {
			fmt.Println("sample item structure:")
			fmt.Println(sample)
		}
		return nil
	},
}

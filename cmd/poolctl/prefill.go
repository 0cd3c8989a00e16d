package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/achen-dev/gopool/pool"
	"github.com/achen-dev/gopool/poollog"
	"github.com/achen-dev/gopool/sessionpool"
)

func newPrefillCmd() *cobra.Command {
	var configPath string
	var count int

	cmd := &cobra.Command{
		Use:   "prefill",
		Short: "Prefill a pool from a config file and print its debug dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := poollog.Default()

			fc, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			factory, err := sessionpool.NewSQLiteFactory(fc.DSN)
			if err != nil {
				return err
			}
			defer factory.Close()

			p := pool.NewPool(factory, fc.toPoolConfig(logger))
			defer p.Close()

			pool.Prefill(p, count)
			p.DebugDump(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a pool YAML config file (required)")
	cmd.Flags().IntVar(&count, "count", 1, "number of resources to prefill")
	cmd.MarkFlagRequired("config")
	return cmd
}

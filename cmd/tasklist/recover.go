package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tasklist/config"
	"tasklist/store"
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Restore the newest readable backup of the task file",
	Long: `recover moves a damaged task file aside as <key>.corrupt-<timestamp>.json
and puts back the newest backup that still decodes. A task file that still
reads is left untouched. Only the file backend keeps backups.`,
	Args: cobra.NoArgs,
	RunE: runRecover,
}

func init() {
	rootCmd.AddCommand(recoverCmd)
}

func runRecover(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, closeFn, err := openStore(cfg, cliLogger(cmd))
	if err != nil {
		return err
	}
	defer closeFn()

	source, err := st.Recover()
	switch {
	case errors.Is(err, store.ErrRecoveryUnsupported):
		return fmt.Errorf("%s backend: %w", cfg.Storage.Backend, err)
	case err != nil:
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "restored %d tasks under %s from %s\n", len(st.Load()), st.Key(), source)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or remove the parsed-log cache used by --cache",
		Args:  cobra.NoArgs,
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE:  runCacheDir,
	})
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached log entry",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})
	return cacheCmd
}

func runCacheDir(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	store, err := openCache(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), store.Dir())
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	store, err := openCache(s)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", store.Dir(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", store.Dir())
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskaudit/pkg/config"
	"github.com/harrisonrobin/taskaudit/pkg/reconcile"
	"github.com/harrisonrobin/taskaudit/pkg/temporal"
	"github.com/harrisonrobin/taskaudit/pkg/todoist"
	"github.com/harrisonrobin/taskaudit/pkg/web"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskaudit",
		Short:   "Reconcile recurring Todoist tasks against the ticket naming convention",
		Version: Version,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newReconciler wires the Todoist client and resolved timezone into a
// reconciler from the loaded configuration.
func newReconciler() (*reconcile.Reconciler, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	loc := temporal.ResolveLocation(cfg.Timezone)
	client := todoist.NewClient(cfg.APIToken)
	return reconcile.New(client, loc), cfg, nil
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, cfg, err := newReconciler()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = fmt.Sprintf(":%d", cfg.Port)
			}
			log.Printf("listening on %s", addr)
			return web.NewServer(rec, cfg.APIKey).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :PORT)")
	return cmd
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one reconciliation pass and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, _, err := newReconciler()
			if err != nil {
				return err
			}
			result, err := rec.Run(context.Background())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func configCmd() *cobra.Command {
	var timezone string
	var port int

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Persist default settings to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if timezone == "" && port == 0 {
				return fmt.Errorf("nothing to set, use --timezone and/or --port")
			}
			cfg := &config.Config{Timezone: timezone, Port: port}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Printf("Config saved: timezone=%q port=%d\n", cfg.Timezone, cfg.Port)
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone name, e.g. Europe/Madrid")
	cmd.Flags().IntVar(&port, "port", 0, "default HTTP port")
	return cmd
}

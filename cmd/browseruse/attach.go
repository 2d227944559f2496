package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAttachCmd() *cobra.Command {
	var (
		configPath string
		cdpURL     string
		wssURL     string
	)

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach to a remote browser instance over CDP or WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("cdp") {
				cfg.CDPURL = cdpURL
			}
			if flags.Changed("wss") {
				cfg.WSSURL = wssURL
			}

			if cfg.CDPURL == "" && cfg.WSSURL == "" {
				return fmt.Errorf("attach requires --cdp or --wss (or cdp_url/wss_url in the config file)")
			}

			// Attaching never owns the remote process; leave it running.
			cfg.KeepAlive = true
			cfg.ExecutablePath = ""

			return holdInstance(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&cdpURL, "cdp", "", "CDP endpoint, e.g. http://localhost:9222")
	cmd.Flags().StringVar(&wssURL, "wss", "", "WebSocket endpoint, e.g. ws://localhost:3000")

	return cmd
}

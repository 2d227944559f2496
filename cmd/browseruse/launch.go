package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ProphetDiceBot/browser-use/pkg/browser"
)

func newLaunchCmd() *cobra.Command {
	var (
		configPath      string
		headless        bool
		disableSecurity bool
		executablePath  string
		debugHost       string
		debugPort       int
		keepAlive       bool
		proxyServer     string
		extraArgs       []string
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Launch or reuse a local browser instance and hold it until interrupted",
		Long: "Launch acquires a local instance: with --executable-path it first probes the " +
			"debug port for a running instance and attaches to it, starting one only when " +
			"nothing answers; otherwise it launches a fresh instance with generated arguments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath)
			if err != nil {
				return err
			}

			// Flags override the config file only when set explicitly.
			flags := cmd.Flags()
			if flags.Changed("headless") {
				cfg.Headless = headless
			}
			if flags.Changed("disable-security") {
				cfg.DisableSecurity = disableSecurity
			}
			if flags.Changed("executable-path") {
				cfg.ExecutablePath = executablePath
			}
			if flags.Changed("debug-host") {
				cfg.DebugHost = debugHost
			}
			if flags.Changed("debug-port") {
				cfg.DebugPort = debugPort
			}
			if flags.Changed("keep-alive") {
				cfg.KeepAlive = keepAlive
			}
			if flags.Changed("proxy-server") {
				cfg.Proxy = &browser.Proxy{Server: proxyServer}
			}
			if flags.Changed("extra-arg") {
				cfg.ExtraArgs = append(cfg.ExtraArgs, extraArgs...)
			}

			// Attach endpoints belong to the attach subcommand.
			cfg.CDPURL = ""
			cfg.WSSURL = ""

			return holdInstance(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().BoolVar(&headless, "headless", false, "Run without a visible window")
	cmd.Flags().BoolVar(&disableSecurity, "disable-security", true, "Relax same-origin policy and site isolation")
	cmd.Flags().StringVar(&executablePath, "executable-path", "", "Browser binary to reuse or start")
	cmd.Flags().StringVar(&debugHost, "debug-host", browser.DefaultDebugHost, "Host of the local debugging endpoint")
	cmd.Flags().IntVar(&debugPort, "debug-port", browser.DefaultDebugPort, "Port of the local debugging endpoint")
	cmd.Flags().BoolVar(&keepAlive, "keep-alive", false, "Leave the instance running on exit")
	cmd.Flags().StringVar(&proxyServer, "proxy-server", "", "Route instance traffic through this proxy")
	cmd.Flags().StringArrayVar(&extraArgs, "extra-arg", nil, "Extra launch argument (repeatable)")

	return cmd
}

// resolveConfig loads the config file when given, otherwise starts from
// defaults.
func resolveConfig(path string) (browser.Config, error) {
	if path == "" {
		return browser.DefaultConfig(), nil
	}
	return browser.LoadConfig(path)
}

// holdInstance acquires an instance and keeps it alive until SIGINT or
// SIGTERM, then releases it.
func holdInstance(cfg browser.Config) error {
	b := browser.New(cfg)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if _, err := b.GetBrowser(ctx); err != nil {
		return fmt.Errorf("failed to acquire browser instance: %w", err)
	}

	fmt.Println("browser instance acquired; press Ctrl+C to release")
	<-ctx.Done()

	fmt.Println("releasing browser instance")
	return nil
}

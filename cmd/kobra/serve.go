package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kobra/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the KObra SSH server",
	Long: `Start an SSH server that lets users connect and play duels.

Each SSH connection gets its own session with a variant picker menu.
Matches are recorded per SSH user in the shared database (--db).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.kobra/host_key

Examples:
  kobra serve                           # Listen on :23234 with auto-generated key
  kobra serve --ssh :2222               # Listen on port 2222
  kobra serve --host-key ./my_host_key  # Use specific host key
  kobra serve --difficulty hard         # Every session plays the hard preset

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for every session: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	// Session events are the server's only output
	if !rootCmd.PersistentFlags().Changed("log-level") {
		logger.SetLevel(log.InfoLevel)
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("kobra-ssh"))
	if err != nil {
		return err
	}

	logger.Info("connect with ssh", "address", cfg.Address)
	return server.ListenAndServe()
}

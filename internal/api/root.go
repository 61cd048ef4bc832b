// Package cli командная строка holoscope поверх сервисов приложения.
package cli

import (
	"github.com/spf13/cobra"

	"holoscope/config"
	"holoscope/internal/container"
	"holoscope/internal/logging"
)

// session сервисы, собранные перед запуском подкоманды
type session struct {
	c *container.Container
}

// NewRootCmd создаёт корневую команду со всеми подкомандами
func NewRootCmd() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:   "holoscope",
		Short: "Microscopy lab workstation: capture, colorize and report",
		Long: `holoscope manages lab users, captures or uploads microscope images,
colorizes grayscale frames with a Caffe network and renders A4 PDF reports.

Settings come from defaults, the YAML file named by HOLOSCOPE_CONFIG and
environment variables (a .env file in the working directory is loaded first).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s.c = container.New(cfg, logging.New(cfg.Logging.Level))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if s.c == nil {
				return nil
			}
			return s.c.Close()
		},
	}

	cmd.AddCommand(newLoginCmd(s))
	cmd.AddCommand(newUsersCmd(s))
	cmd.AddCommand(newHistoryCmd(s))
	cmd.AddCommand(newOrgsCmd(s))
	cmd.AddCommand(newImageCmd(s))
	cmd.AddCommand(newReportCmd(s))

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after applying config.yaml, PATHMARK_*
environment variables and flags. With --write the result is saved to the
config file.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStoreAnnotation: "true"},
		RunE:        a.runConfig,
	}
	cmd.Flags().Bool("write", false, "Save the effective configuration to the config file")
	return cmd
}

func (a *app) runConfig(cmd *cobra.Command, args []string) error {
	data, err := a.cfg.Marshal()
	if err != nil {
		return err
	}
	a.out.Raw(string(data))

	write, _ := cmd.Flags().GetBool("write")
	if !write {
		return nil
	}
	if err := a.cfg.Save(a.configPath); err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "Wrote %s\n", a.configPath)
	return nil
}

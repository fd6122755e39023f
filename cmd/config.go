package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hjens/json-explorer/internal/config"
)

var configShowDefault bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(versionString()) //nolint:forbidigo
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "print the effective configuration",
	Long: `Print the configuration the explorer runs with: the embedded defaults
with the user config file merged on top. With --default the embedded
default file is printed verbatim, comments included, as a starting
point for $XDG_CONFIG_HOME/jx/config.yaml.`,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runConfigShow(cmd, args); code != 0 {
			exitFn(code)
		}
	},
}

func runConfigShow(_ *cobra.Command, _ []string) int {
	if configShowDefault {
		_, _ = os.Stdout.Write(config.DefaultYAML())
		return 0
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode config: %v\n", err)
		return 2
	}
	_, _ = os.Stdout.Write(out)
	return 0
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read for unset flags.
const EnvPrefix = "MORPH"

// newEnv binds cmd's flags to MORPH_* variables. A flag given on the command
// line wins over the environment, which wins over the flag default.
func newEnv(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

func resolveFromEnv(cmd *cobra.Command, opts *RotateOptions) error {
	v, err := newEnv(cmd)
	if err != nil {
		return err
	}
	opts.Config = v.GetString("config")
	opts.Interval = v.GetDuration("interval")
	opts.Ticks = v.GetInt("ticks")
	opts.Journal = v.GetString("journal")
	opts.NoColor = v.GetBool("no-color")
	opts.TUI = v.GetBool("tui")
	return nil
}

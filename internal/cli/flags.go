package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configKeyAnnotation marks a flag as the command-line source of a config
// key. Bindings are made for the executing command only, so subcommands
// can share keys.
const configKeyAnnotation = "bseg_config_key"

func (a *app) bind(key string, flag *pflag.Flag) {
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[configKeyAnnotation] = []string{key}
}

func (a *app) bindCommandFlags(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[configKeyAnnotation]
		if !ok || err != nil {
			return
		}
		err = a.v.BindPFlag(keys[0], f)
	})
	return err
}

package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd builds the chemoseq command tree and wires viper to merge
// flags with an optional chemoseq.yaml file and CHEMOSEQ_-prefixed
// environment variables, per SPEC_FULL.md §6.3.
func rootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "chemoseq",
		Short: "Resource-constrained chemotherapy chair scheduler",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindConfig(cmd, v)
		},
	}

	root.PersistentFlags().String("config", "chemoseq.yaml", "path to an optional config file")
	root.PersistentFlags().Bool("verbose", false, "enable debug-level logging")

	root.AddCommand(solveCmd(v))

	return root
}

// bindConfig loads an optional config file and binds every flag so viper
// resolves values in flag > env > file > default order.
func bindConfig(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix("CHEMOSEQ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// An explicit config path that does not exist surfaces as a
			// file-system error rather than ConfigFileNotFoundError.
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	return v.BindPFlags(cmd.Flags())
}

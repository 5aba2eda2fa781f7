package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/valderique/kvgo/cmd/util"
	"gopkg.in/yaml.v3"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Prints metadata about the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := util.OpenStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		info, err := s.Info()
		if err != nil {
			return err
		}

		switch format := viper.GetString("format"); format {
		case "json":
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		case "yaml":
			out, err := yaml.Marshal(info)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		default:
			return fmt.Errorf("invalid format %s (json, yaml)", format)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().String("format", "json", "output format (json, yaml)")
}

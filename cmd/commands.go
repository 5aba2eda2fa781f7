package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valderique/kvgo/cmd/util"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := util.OpenStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			value, err := s.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.ValidateTokens(args...); err != nil {
				return err
			}

			s, err := util.OpenStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	rmCmd = &cobra.Command{
		Use:   "rm [key]",
		Short: "Removes a key-value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.ValidateTokens(args...); err != nil {
				return err
			}

			s, err := util.OpenStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Remove(args[0]); err != nil {
				return err
			}
			fmt.Println("removed successfully")
			return nil
		},
	}
)

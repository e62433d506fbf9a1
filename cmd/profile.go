package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect student profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile given by --profile as it is sent to the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if p.IsZero() {
			fmt.Fprintln(out, "No student profile available")
			return nil
		}
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
}

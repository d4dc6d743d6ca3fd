package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the saved section filter",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current section filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "section: %s\n", store.SectionFilter())
			fmt.Fprintf(w, "default: %s\n", store.DefaultSection())
			return nil
		},
	}

	setSection := &cobra.Command{
		Use:   "set-section <value>",
		Short: "Save the section filter used by list and open",
		Long: `Save the section filter used by list and open.

The value is sent to the API verbatim, URL-encoded. Guardian accepts
section ids such as world, sport or books, and "|" to combine them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.TrimSpace(args[0])
			if value == "" {
				return errors.New("section must not be empty")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetSectionFilter(value); err != nil {
				return fmt.Errorf("saving section: %w", err)
			}
			a.log.InfoObj("section filter saved", "settings_section_saved", map[string]any{
				"section": value,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "section: %s\n", value)
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved section filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ResetSectionFilter(); err != nil {
				return fmt.Errorf("resetting section: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "section: %s\n", store.DefaultSection())
			return nil
		},
	}

	cmd.AddCommand(show, setSection, reset)
	return cmd
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registration commands",
	}

	cmd.AddCommand(newRegisterSubmitCmd())
	cmd.AddCommand(newRegisterListCmd())
	cmd.AddCommand(newRegisterExportCmd())

	return cmd
}

func newRegisterSubmitCmd() *cobra.Command {
	var name, class, section, item, contact, address, bus string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an event registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":    name,
				"class":   class,
				"section": section,
				"item":    item,
				"contact": contact,
				"address": address,
				"bus":     bus,
			}
			var result Registration

			if err := client.Post("/api/v1/registrations", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Student name (required)")
	cmd.Flags().StringVar(&class, "class", "", "Class (required)")
	cmd.Flags().StringVar(&section, "section", "", "Section (required)")
	cmd.Flags().StringVar(&item, "item", "", "Event item (required)")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact number (defaults to login phone)")
	cmd.Flags().StringVar(&address, "address", "", "Address")
	cmd.Flags().StringVar(&bus, "bus", "", "Bus required (Yes/No)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func newRegisterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RegistrationList

			if err := client.Get("/api/v1/registrations", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRegisterExportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export registrations as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile == "" {
				return client.GetRaw("/api/v1/registrations/export", os.Stdout)
			}

			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := client.GetRaw("/api/v1/registrations/export", f); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Exported to %s", outFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "file", "", "Write CSV to this file instead of stdout")

	return cmd
}

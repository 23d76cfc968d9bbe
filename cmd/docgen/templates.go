package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-hebergement/internal/templating"
)

func newTemplatesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect document templates",
	}

	var status, docType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := templating.Filter{Status: templating.Status(status), Type: templating.DocumentType(docType)}
			if f.Status != "" && !f.Status.Valid() {
				return fmt.Errorf("invalid status %q", status)
			}
			if f.Type != "" && !f.Type.Valid() {
				return fmt.Errorf("invalid type %q", docType)
			}
			stack, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			var rows [][]string
			for _, tpl := range stack.Templates.List(f) {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(tpl.ID), 10),
					tpl.Code,
					string(tpl.Type),
					string(tpl.Status),
					tpl.Version,
					tpl.Name,
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"ID", "CODE", "TYPE", "STATUS", "VERSION", "NAME"}, rows)
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status (active, inactive)")
	list.Flags().StringVar(&docType, "type", "", "filter by document type")

	show := &cobra.Command{
		Use:   "show <code>",
		Short: "Show the variables of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			tpl, err := stack.Templates.Registry().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) v%s %s\n\n", tpl.Name, tpl.Code, tpl.Version, tpl.Status)
			var rows [][]string
			for _, v := range tpl.Variables {
				required := ""
				if v.Required {
					required = "yes"
				}
				rows = append(rows, []string{v.Name, string(v.Kind), required, v.Description})
			}
			return writeTable(cmd.OutOrStdout(), []string{"VARIABLE", "KIND", "REQUIRED", "DESCRIPTION"}, rows)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

// newCheckCmd reports, per template, declared variables that nothing fills
// and declarations never referenced.
func newCheckCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check templates against the reservation mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			var rows [][]string
			for _, tpl := range stack.Templates.List(templating.Filter{}) {
				rows = append(rows, []string{
					tpl.Code,
					orDash(stack.Documents.Coverage(tpl)),
					orDash(tpl.Unused()),
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"CODE", "UNMAPPED", "UNUSED"}, rows)
		},
	}
}

func orDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

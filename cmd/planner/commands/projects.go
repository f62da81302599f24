package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	flagName      = "name"
	flagProjectID = "id"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}
	cmd.AddCommand(newListProjectsCmd(a))
	cmd.AddCommand(newCreateProjectCmd(a))
	cmd.AddCommand(newDeleteProjectCmd(a))
	return cmd
}

func newListProjectsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapter, st, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			idx := st.ListProjects()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), idx)
			}
			return renderProjects(cmd.OutOrStdout(), idx)
		},
	}
	cmd.Flags().BoolVar(&asJSON, flagJSON, false, "以 JSON 输出")
	return cmd
}

func newCreateProjectCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project with one default area",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapter, st, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			p, err := st.CreateProject(name)
			if err != nil {
				return fmt.Errorf("error creating project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, flagName, "n", "", "Project name")
	if err := cmd.MarkFlagRequired(flagName); err != nil {
		panic(fmt.Errorf("failed to mark name flag as required for create project command: %w", err))
	}
	return cmd
}

func newDeleteProjectCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapter, st, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			if err := st.DeleteProject(id); err != nil {
				return fmt.Errorf("error deleting project %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, flagProjectID, "", "Project ID")
	if err := cmd.MarkFlagRequired(flagProjectID); err != nil {
		panic(fmt.Errorf("failed to mark id flag as required for delete project command: %w", err))
	}
	return cmd
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shulehub/shule/api"
)

func newStudentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Browse the current school's students",
	}
	cmd.AddCommand(newStudentsListCmd(a), newStudentsShowCmd(a))
	return cmd
}

func newStudentsListCmd(a *app) *cobra.Command {
	var search, classID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := a.services.Students.List(cmd.Context(), api.StudentFilter{
				Search:  search,
				ClassID: classID,
			})
			if err != nil {
				return fail(err)
			}
			if len(students) == 0 {
				fmt.Println("No students found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ADMISSION\tNAME\tCLASS\tID")
			for _, st := range students {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.AdmissionNo, st.Name, st.ClassID, st.ID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match on student name")
	cmd.Flags().StringVar(&classID, "class", "", "filter by class id")
	return cmd
}

func newStudentsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.services.Students.Get(cmd.Context(), args[0])
			if err != nil {
				return fail(err)
			}
			fmt.Printf("Name:       %s\n", st.Name)
			fmt.Printf("Admission:  %s\n", st.AdmissionNo)
			if st.Email != "" {
				fmt.Printf("Email:      %s\n", st.Email)
			}
			fmt.Printf("Class:      %s\n", st.ClassID)
			if st.SectionID != "" {
				fmt.Printf("Section:    %s\n", st.SectionID)
			}
			fmt.Printf("Admitted:   %s\n", st.AdmittedAt.Format("2006-01-02"))
			return nil
		},
	}
}

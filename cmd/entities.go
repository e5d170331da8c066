package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/CampusFoundry/ums-console/pkg/entity"
	"github.com/CampusFoundry/ums-console/pkg/umsapi"
)

func requireUMS(cmd *cobra.Command) string {
	umsID, _ := cmd.Flags().GetString("ums")
	if umsID == "" {
		slog.Error("--ums is required.")
		os.Exit(1)
	}
	return umsID
}

// --- Departments ---

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Manages a UMS instance's departments.",
}

var departmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists departments.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Departments(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to list departments", "error", err)
			os.Exit(1)
		}
		printJSON(ctl.List())
	},
}

var departmentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Creates a department.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		umsID := requireUMS(cmd)
		ctl := entity.Departments(newClient(s), umsID)
		defer ctl.Close()

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		if name == "" {
			slog.Error("--name is required.")
			os.Exit(1)
		}

		created, err := ctl.Add(ctx, umsapi.DepartmentInput{Name: name, Description: description})
		if err != nil {
			logAndAudit(s, "AddDepartment", name, "fatal", "Failed to create department", "error", err)
		}
		logAndAudit(s, "AddDepartment", name, "info", "Department created.", "id", created.ID, "code", created.Code)
		printJSON(created)
	},
}

var departmentsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Updates a department by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Departments(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		// The controller resolves ids against its mirror, so load it first.
		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load departments", "error", err)
			os.Exit(1)
		}

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		updated, err := ctl.Edit(ctx, args[0], umsapi.DepartmentInput{Name: name, Description: description})
		if err != nil {
			logAndAudit(s, "EditDepartment", args[0], "fatal", "Failed to update department", "error", err)
		}
		logAndAudit(s, "EditDepartment", args[0], "info", "Department updated.")
		printJSON(updated)
	},
}

var departmentsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Deletes a department by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Departments(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load departments", "error", err)
			os.Exit(1)
		}
		if err := ctl.Delete(ctx, args[0]); err != nil {
			logAndAudit(s, "DeleteDepartment", args[0], "fatal", "Failed to delete department", "error", err)
		}
		logAndAudit(s, "DeleteDepartment", args[0], "info", "Department deleted.")
		fmt.Println("Deleted.")
	},
}

// --- Programs ---

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "Manages a UMS instance's programs.",
}

var programsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists programs.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Programs(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to list programs", "error", err)
			os.Exit(1)
		}
		printJSON(ctl.List())
	},
}

var programsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Creates a program.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		umsID := requireUMS(cmd)
		ctl := entity.Programs(newClient(s), umsID)
		defer ctl.Close()

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			slog.Error("--name is required.")
			os.Exit(1)
		}
		description, _ := cmd.Flags().GetString("description")
		departmentID, _ := cmd.Flags().GetString("department")
		duration, _ := cmd.Flags().GetInt("duration-years")

		created, err := ctl.Add(ctx, umsapi.ProgramInput{
			Name:          name,
			Description:   description,
			DepartmentID:  departmentID,
			DurationYears: duration,
		})
		if err != nil {
			logAndAudit(s, "AddProgram", name, "fatal", "Failed to create program", "error", err)
		}
		logAndAudit(s, "AddProgram", name, "info", "Program created.", "id", created.ID)
		printJSON(created)
	},
}

var programsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Updates a program by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Programs(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load programs", "error", err)
			os.Exit(1)
		}

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		departmentID, _ := cmd.Flags().GetString("department")
		duration, _ := cmd.Flags().GetInt("duration-years")

		updated, err := ctl.Edit(ctx, args[0], umsapi.ProgramInput{
			Name:          name,
			Description:   description,
			DepartmentID:  departmentID,
			DurationYears: duration,
		})
		if err != nil {
			logAndAudit(s, "EditProgram", args[0], "fatal", "Failed to update program", "error", err)
		}
		logAndAudit(s, "EditProgram", args[0], "info", "Program updated.")
		printJSON(updated)
	},
}

var programsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Deletes a program by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Programs(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load programs", "error", err)
			os.Exit(1)
		}
		if err := ctl.Delete(ctx, args[0]); err != nil {
			logAndAudit(s, "DeleteProgram", args[0], "fatal", "Failed to delete program", "error", err)
		}
		logAndAudit(s, "DeleteProgram", args[0], "info", "Program deleted.")
		fmt.Println("Deleted.")
	},
}

// --- Students ---

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manages a UMS instance's students.",
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists students.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Students(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to list students", "error", err)
			os.Exit(1)
		}
		printJSON(ctl.List())
	},
}

var studentsSearchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Searches students by free text.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		results, err := client.SearchStudents(ctx, requireUMS(cmd), args[0])
		if err != nil {
			slog.Error("Student search failed", "error", err)
			os.Exit(1)
		}
		printJSON(results)
	},
}

var studentsByProgramCmd = &cobra.Command{
	Use:   "by-program PROGRAM_ID",
	Short: "Lists the students enrolled in one program.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		results, err := client.StudentsByProgram(ctx, args[0])
		if err != nil {
			slog.Error("Failed to list students by program", "error", err)
			os.Exit(1)
		}
		printJSON(results)
	},
}

var studentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Creates a student; the matricule is assigned by the backend.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		umsID := requireUMS(cmd)
		ctl := entity.Students(newClient(s), umsID)
		defer ctl.Close()

		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		if firstName == "" || lastName == "" {
			slog.Error("Both --first-name and --last-name are required.")
			os.Exit(1)
		}
		email, _ := cmd.Flags().GetString("email")
		programID, _ := cmd.Flags().GetString("program")

		created, err := ctl.Add(ctx, umsapi.StudentInput{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			ProgramID: programID,
		})
		if err != nil {
			logAndAudit(s, "AddStudent", firstName+" "+lastName, "fatal", "Failed to create student", "error", err)
		}
		logAndAudit(s, "AddStudent", created.ID, "info", "Student created.", "matricule", created.Matricule)
		printJSON(created)
	},
}

var studentsBulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Creates many students from a JSON file.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		umsID := requireUMS(cmd)
		client := newClient(s)

		fromFile, _ := cmd.Flags().GetString("from-file")
		if fromFile == "" {
			slog.Error("--from-file is required.")
			os.Exit(1)
		}
		inputData, err := os.ReadFile(fromFile)
		if err != nil {
			slog.Error("Failed to read input file", "file", fromFile, "error", err)
			os.Exit(1)
		}

		var inputs []umsapi.StudentInput
		if err := json.Unmarshal(inputData, &inputs); err != nil {
			slog.Error("Failed to unmarshal student data from file", "error", err)
			os.Exit(1)
		}
		for i := range inputs {
			inputs[i].UMSID = umsID
		}

		created, err := client.BulkCreateStudents(ctx, inputs)
		if err != nil {
			logAndAudit(s, "BulkCreateStudents", umsID, "fatal", "Bulk student creation failed", "error", err)
		}
		logAndAudit(s, "BulkCreateStudents", umsID, "info", "Students created in bulk.", "count", len(created))
		printJSON(created)
	},
}

var studentsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Updates a student by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Students(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load students", "error", err)
			os.Exit(1)
		}

		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")
		programID, _ := cmd.Flags().GetString("program")

		updated, err := ctl.Edit(ctx, args[0], umsapi.StudentInput{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			ProgramID: programID,
		})
		if err != nil {
			logAndAudit(s, "EditStudent", args[0], "fatal", "Failed to update student", "error", err)
		}
		logAndAudit(s, "EditStudent", args[0], "info", "Student updated.")
		printJSON(updated)
	},
}

var studentsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Deletes a student by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Students(newClient(s), requireUMS(cmd))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load students", "error", err)
			os.Exit(1)
		}
		if err := ctl.Delete(ctx, args[0]); err != nil {
			logAndAudit(s, "DeleteStudent", args[0], "fatal", "Failed to delete student", "error", err)
		}
		logAndAudit(s, "DeleteStudent", args[0], "info", "Student deleted.")
		fmt.Println("Deleted.")
	},
}

func init() {
	for _, c := range []*cobra.Command{
		departmentsListCmd, departmentsAddCmd, departmentsEditCmd, departmentsDeleteCmd,
		programsListCmd, programsAddCmd, programsEditCmd, programsDeleteCmd,
		studentsListCmd, studentsSearchCmd, studentsAddCmd, studentsBulkCmd,
		studentsEditCmd, studentsDeleteCmd,
	} {
		c.Flags().String("ums", "", "UMS instance id.")
	}

	departmentsAddCmd.Flags().String("name", "", "Department name.")
	departmentsAddCmd.Flags().String("description", "", "Department description.")
	departmentsEditCmd.Flags().String("name", "", "New department name.")
	departmentsEditCmd.Flags().String("description", "", "New department description.")

	for _, c := range []*cobra.Command{programsAddCmd, programsEditCmd} {
		c.Flags().String("name", "", "Program name.")
		c.Flags().String("description", "", "Program description.")
		c.Flags().String("department", "", "Owning department id.")
		c.Flags().Int("duration-years", 0, "Program duration in years.")
	}

	for _, c := range []*cobra.Command{studentsAddCmd, studentsEditCmd} {
		c.Flags().String("first-name", "", "Student first name.")
		c.Flags().String("last-name", "", "Student last name.")
		c.Flags().String("email", "", "Student email.")
		c.Flags().String("program", "", "Enrolled program id.")
	}
	studentsBulkCmd.Flags().String("from-file", "", "JSON file with an array of students.")

	departmentsCmd.AddCommand(departmentsListCmd, departmentsAddCmd, departmentsEditCmd, departmentsDeleteCmd)
	programsCmd.AddCommand(programsListCmd, programsAddCmd, programsEditCmd, programsDeleteCmd)
	studentsCmd.AddCommand(studentsListCmd, studentsSearchCmd, studentsByProgramCmd,
		studentsAddCmd, studentsBulkCmd, studentsEditCmd, studentsDeleteCmd)
}

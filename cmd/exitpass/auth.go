package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/campusgate/exitpass/internal/app/services"
	"github.com/campusgate/exitpass/internal/pkg/apperrors"
)

var registerInput services.RegisterStudentInput

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register as a student and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, err := deps.AuthService.RegisterStudent(cmd.Context(), registerInput)
		if err != nil {
			return err
		}
		cmd.Printf("Registered %s (%s)\n", student.Name, student.RollNumber)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <roll-number>",
	Short: "Log in as a registered student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := deps.AuthService.LoginAsStudent(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				return errors.New("no student with that roll number; register first")
			}
			return err
		}
		cmd.Printf("Logged in as %s (%s)\n", session.Name, session.RollNumber)
		return nil
	},
}

var (
	adminID       string
	adminPassword string
)

var adminLoginCmd = &cobra.Command{
	Use:   "admin-login",
	Short: "Log in as the administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := deps.AuthService.LoginAsAdmin(cmd.Context(), adminID, adminPassword)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("invalid administrator credentials")
		}
		cmd.Println("Logged in as administrator")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deps.AuthService.Logout(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := deps.AuthService.Current()
		if session == nil {
			cmd.Println("Not logged in")
			return nil
		}
		return printJSON(cmd, session)
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerInput.Name, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerInput.RollNumber, "roll", "", "roll number")
	registerCmd.Flags().StringVar(&registerInput.RoomNumber, "room", "", "room number")
	registerCmd.Flags().StringVar(&registerInput.HostelName, "hostel", "", "hostel name")
	registerCmd.Flags().StringVar(&registerInput.ContactNumber, "contact", "", "contact number")
	registerCmd.Flags().StringVar(&registerInput.PhotoURL, "photo", "", "photo URL")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("roll")
	_ = registerCmd.MarkFlagRequired("room")
	_ = registerCmd.MarkFlagRequired("hostel")
	_ = registerCmd.MarkFlagRequired("contact")

	adminLoginCmd.Flags().StringVar(&adminID, "id", "", "administrator ID")
	adminLoginCmd.Flags().StringVar(&adminPassword, "password", "", "administrator password")
	_ = adminLoginCmd.MarkFlagRequired("id")
	_ = adminLoginCmd.MarkFlagRequired("password")
}

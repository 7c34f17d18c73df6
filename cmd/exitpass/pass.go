package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusgate/exitpass/internal/app/models"
	"github.com/campusgate/exitpass/internal/app/services"
)

var (
	leavingFlag   string
	returningFlag string
	purposeFlag   string
	listAllFlag   bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a pass request (student)",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := deps.AuthService.Current()
		if !session.IsStudent() {
			return errors.New("log in as a student to submit a pass request")
		}

		leaving, err := parseTimeFlag(leavingFlag)
		if err != nil {
			return err
		}
		returning, err := parseTimeFlag(returningFlag)
		if err != nil {
			return err
		}

		request, err := deps.PassService.Submit(cmd.Context(), services.SubmitPassInput{
			StudentID:     session.UserID,
			RollNumber:    session.RollNumber,
			LeavingTime:   leaving,
			ReturningTime: returning,
			Purpose:       purposeFlag,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Submitted pass request %s (pending)\n", request.ID)
		return nil
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve a pending pass request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deps.AuthService.IsAdmin() {
			return errors.New("log in as administrator to approve requests")
		}
		request, err := deps.PassService.Approve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Approved pass request %s; QR code issued (%d bytes)\n", request.ID, len(request.QRCode))
		return nil
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a pending pass request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deps.AuthService.IsAdmin() {
			return errors.New("log in as administrator to reject requests")
		}
		request, err := deps.PassService.Reject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Rejected pass request %s\n", request.ID)
		return nil
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify <request-id>",
	Short: "Send the (simulated) approval notification (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deps.AuthService.IsAdmin() {
			return errors.New("log in as administrator to send notifications")
		}
		request, err := deps.PassService.Notify(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Notified %s about pass request %s\n", request.StudentName, request.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pass requests: own requests as a student, all with --all as admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := deps.AuthService.Current()

		var (
			requests []models.PassRequest
			err      error
		)
		switch {
		case listAllFlag:
			if !session.IsAdmin() {
				return errors.New("log in as administrator to list all requests")
			}
			requests, err = deps.PassService.List(cmd.Context())
		case session.IsStudent():
			requests, err = deps.PassService.ListForStudent(cmd.Context(), session.UserID)
		case session.IsAdmin():
			requests, err = deps.PassService.List(cmd.Context())
		default:
			return errors.New("log in first")
		}
		if err != nil {
			return err
		}

		if len(requests) == 0 {
			cmd.Println("No pass requests")
			return nil
		}
		for _, r := range requests {
			notified := ""
			if r.NotificationSent {
				notified = " notified"
			}
			cmd.Println(fmt.Sprintf("%s  %-8s  %s  %s → %s  %q%s",
				r.ID, r.Status, r.RollNumber,
				r.LeavingTime.Format("2006-01-02 15:04"),
				r.ReturningTime.Format("2006-01-02 15:04"),
				r.Purpose, notified))
		}
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&leavingFlag, "leaving", "", "leaving time")
	submitCmd.Flags().StringVar(&returningFlag, "returning", "", "returning time")
	submitCmd.Flags().StringVar(&purposeFlag, "purpose", "", "purpose of the pass")
	_ = submitCmd.MarkFlagRequired("leaving")
	_ = submitCmd.MarkFlagRequired("returning")
	_ = submitCmd.MarkFlagRequired("purpose")

	listCmd.Flags().BoolVar(&listAllFlag, "all", false, "list every request (admin)")
}

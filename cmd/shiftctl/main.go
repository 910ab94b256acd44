package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/securefront/workforce-backend-go/internal/app"
	"github.com/securefront/workforce-backend-go/internal/config"
	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/domain/report"
	"github.com/securefront/workforce-backend-go/internal/pkg/cron"
	"github.com/securefront/workforce-backend-go/internal/pkg/jwt"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "shiftctl",
		Short:         "Operations tool for the workforce backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(timesheetCmd())
	rootCmd.AddCommand(tokenCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// withApp loads configuration and runs fn against a wired application.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func sweepCmd() *cobra.Command {
	var agencyID, date string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark absentees for elapsed shifts",
		Long: `Creates absent records for assigned shifts that ended without any attendance.
Without --agency every agency is swept for yesterday and today.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				if agencyID == "" {
					return cron.NewAbsenteeJob(a.Agencies, a.Attendance, nil).Run(cmd.Context())
				}
				if date == "" {
					date = timeutil.DateOf(time.Now().UTC())
				}
				resp, err := a.Attendance.MarkAbsentees(cmd.Context(), attendance.MarkAbsenteesRequest{
					AgencyID: agencyID,
					Date:     date,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d absent record(s) created\n", resp.AgencyID, resp.Date, resp.Created)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&agencyID, "agency", "", "Agency id (default: all agencies)")
	cmd.Flags().StringVar(&date, "date", "", "Shift date YYYY-MM-DD (default: today, UTC)")

	return cmd
}

func timesheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Timesheet operations",
	}
	cmd.AddCommand(timesheetExportCmd())
	return cmd
}

func timesheetExportCmd() *cobra.Command {
	var (
		filter report.TimesheetFilter
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a timesheet as csv or xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				file, err := a.Reports.ExportTimesheet(cmd.Context(), filter, report.ExportFormat(format))
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = file.Filename
				} else if info, err := os.Stat(path); err == nil && info.IsDir() {
					path = filepath.Join(path, file.Filename)
				}
				if err := os.WriteFile(path, file.Data, 0o644); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(file.Data))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filter.AgencyID, "agency", "", "Agency id")
	cmd.Flags().StringVar(&filter.StartDate, "from", "", "First day YYYY-MM-DD")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "Last day YYYY-MM-DD")
	cmd.Flags().StringVar(&filter.EmployeeID, "employee", "", "Only this employee")
	cmd.Flags().StringVar(&filter.SiteID, "site", "", "Only this site")
	cmd.Flags().StringVar(&format, "format", string(report.ExportCSV), "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory")
	_ = cmd.MarkFlagRequired("agency")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func tokenCmd() *cobra.Command {
	var userID, agencyID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			svc, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
			if err != nil {
				return err
			}
			token, expiresAt, err := svc.GenerateAccessToken(userID, agencyID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Employee id")
	cmd.Flags().StringVar(&agencyID, "agency", "", "Agency id")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("agency")

	return cmd
}

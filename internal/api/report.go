package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "holoscope/internal/application"
	"holoscope/internal/domain/entity"
)

func newReportCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate PDF reports",
	}
	cmd.AddCommand(newReportGenerateCmd(s), newReportFieldsCmd())
	return cmd
}

func newReportGenerateCmd(s *session) *cobra.Command {
	var (
		imagePath  string
		outPath    string
		recordFile string
		fields     []string
		colorize   bool
		send       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Validate report fields and render the PDF",
		Long: `Builds the report record from form defaults, the YAML record file and
--field overrides (applied in that order, last write wins), validates it and
renders the PDF. Every missing or invalid field is listed at once.`,
		Example: `  holoscope report generate --image upload_20261018_101500.png --record sample.yaml
  holoscope report generate --image slide.png --record sample.yaml --field status=Final --out report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if colorize && imagePath != "" {
				colored, err := s.c.Imaging().ColorizeFile(ctx, imagePath, "")
				if err != nil {
					return err
				}
				imagePath = colored
			}

			reports := s.c.ReportService
			b := reports.Draft(imagePath)
			if recordFile != "" {
				f, err := os.Open(recordFile)
				if err != nil {
					return err
				}
				err = app.ApplyYAML(b, f)
				f.Close()
				if err != nil {
					return err
				}
			}
			if err := app.ApplyAssignments(b, fields); err != nil {
				return err
			}

			res, err := reports.Generate(ctx, b, outPath)
			var verr *entity.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Missing or invalid report data:")
				for _, fe := range verr.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Reason)
				}
				return err
			}
			if err != nil {
				return err
			}

			for _, w := range res.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			fmt.Fprintf(out, "Report saved to %s (%d pages, id %s)\n", res.Path, res.Pages, res.ReportID)

			if send {
				if err := reports.Deliver(ctx, res); err != nil {
					return err
				}
				fmt.Fprintln(out, "Report sent")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Image to embed")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF (default Report_<image>.pdf in the workspace)")
	cmd.Flags().StringVarP(&recordFile, "record", "r", "", "YAML file with report fields")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field override name=value (repeatable)")
	cmd.Flags().BoolVar(&colorize, "colorize", false, "Colorize the image before embedding")
	cmd.Flags().BoolVar(&send, "send", false, "Send the PDF to the configured Telegram chat")
	return cmd
}

func newReportFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List report field names and labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range entity.RecordFields {
				fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Label)
			}
			return tw.Flush()
		},
	}
}

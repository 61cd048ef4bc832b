package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImageCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Upload, capture and colorize images",
	}

	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Copy an image into the workspace as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := s.c.Imaging().Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image loaded and saved as %s\n", path)
			return nil
		},
	}

	var device int
	var listOnly bool
	capture := &cobra.Command{
		Use:   "capture",
		Short: "Grab one frame from a camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			imaging := s.c.Imaging()
			if listOnly {
				cams := imaging.Cameras(cmd.Context())
				if len(cams) == 0 {
					return fmt.Errorf("no cameras found")
				}
				for _, i := range cams {
					fmt.Fprintf(cmd.OutOrStdout(), "Camera %d\n", i)
				}
				return nil
			}
			path, err := imaging.Capture(cmd.Context(), device)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved image to %s\n", path)
			return nil
		},
	}
	capture.Flags().IntVarP(&device, "device", "d", 0, "Camera device index")
	capture.Flags().BoolVar(&listOnly, "list", false, "List available cameras and exit")

	var out string
	colorize := &cobra.Command{
		Use:   "colorize <file>",
		Short: "Colorize a grayscale image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := s.c.Imaging().ColorizeFile(cmd.Context(), args[0], out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Colorized image saved as %s\n", path)
			return nil
		},
	}
	colorize.Flags().StringVarP(&out, "out", "o", "", "Output PNG (default <file>_color.png)")

	cmd.AddCommand(upload, capture, colorize)
	return cmd
}

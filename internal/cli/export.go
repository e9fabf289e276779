package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rodor-repo/ThreeJS-sub001/internal/export"
	"github.com/rodor-repo/ThreeJS-sub001/internal/session"
)

// newExportCmd creates the `export` command tree. Every subcommand
// evaluates the design first so exports reflect formula results.
func newExportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a design to shareable files",
	}

	cmd.AddCommand(newExportPDFCmd(e))
	cmd.AddCommand(newExportLabelsCmd(e))
	cmd.AddCommand(newExportDXFCmd(e))
	cmd.AddCommand(newExportXLSXCmd(e))
	return cmd
}

func newExportPDFCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pdf [design file]",
		Short: "Render elevation drawings and a summary to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := evaluatedScene(e, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			path := outputPath(output, args[0], ".pdf")
			if err := export.ExportPDF(path, s.Scene(), s.Config()); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derives from the design name)")
	return cmd
}

func newExportLabelsCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "labels [design file]",
		Short: "Render QR-coded cabinet labels to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := evaluatedScene(e, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			path := outputPath(output, args[0], "-labels.pdf")
			if err := export.ExportLabels(path, s.Scene()); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derives from the design name)")
	return cmd
}

func newExportDXFCmd(e *env) *cobra.Command {
	var output, viewID string

	cmd := &cobra.Command{
		Use:   "dxf [design file]",
		Short: "Render one view's elevation to DXF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := evaluatedScene(e, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			view := strings.ToLower(viewID)
			if view == "" {
				views := s.Scene().ViewIDs()
				if len(views) == 0 {
					return fmt.Errorf("design has no placed cabinets")
				}
				view = views[0]
			}

			path := outputPath(output, args[0], "-"+view+".dxf")
			if err := export.ExportDXF(path, s.Scene(), view); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derives from the design name)")
	cmd.Flags().StringVar(&viewID, "view", "", "view to export (default is the first view)")
	return cmd
}

func newExportXLSXCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "xlsx [design file]",
		Short: "Write the cut list workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := evaluatedScene(e, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			path := outputPath(output, args[0], "-cutlist.xlsx")
			if err := export.ExportCutList(path, s.Scene(), s.Config()); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derives from the design name)")
	return cmd
}

// evaluatedScene opens a design and runs its formulas so the export
// sees the same dimensions the editor would show.
func evaluatedScene(e *env, path string) (*session.Session, error) {
	s, _, err := e.openSession(path)
	if err != nil {
		return nil, err
	}
	s.Recalc()
	return s, nil
}

// outputPath resolves the export target: an explicit -o flag wins,
// otherwise the design file's name with a new suffix.
func outputPath(flag, designPath, suffix string) string {
	if flag != "" {
		return flag
	}
	base := strings.TrimSuffix(designPath, filepath.Ext(designPath))
	return base + suffix
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rodor-repo/ThreeJS-sub001/internal/importer"
	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
	"github.com/rodor-repo/ThreeJS-sub001/internal/project"
	"github.com/rodor-repo/ThreeJS-sub001/internal/session"
)

// newImportCmd creates the `import` command: read a cabinet schedule
// and merge its cabinets into a design, creating the design when it
// does not exist yet. Rows that cannot be parsed are skipped and
// reported, matching the editor's import dialog.
func newImportCmd(e *env) *cobra.Command {
	var designPath, viewID string

	cmd := &cobra.Command{
		Use:   "import [schedule file]",
		Short: "Import a cabinet schedule (CSV, Excel, or DXF) into a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedulePath := args[0]

			result, err := runImport(schedulePath)
			if err != nil {
				return err
			}
			for _, msg := range result.Errors {
				e.log.Warn("skipped row", zap.String("detail", msg))
			}
			for _, msg := range result.Warnings {
				e.log.Warn("import warning", zap.String("detail", msg))
			}
			if len(result.Cabinets) == 0 {
				if len(result.Errors) > 0 {
					return fmt.Errorf("nothing imported: %s", result.Errors[0])
				}
				return fmt.Errorf("nothing imported from %s", schedulePath)
			}

			if viewID != "" {
				view := strings.ToLower(viewID)
				for _, c := range result.Cabinets {
					if c.ViewID == model.ViewNone {
						c.ViewID = view
					}
				}
			}

			if designPath == "" {
				designPath = strings.TrimSuffix(schedulePath, filepath.Ext(schedulePath)) + project.DesignExt
			}
			d, err := loadOrNewDesign(designPath)
			if err != nil {
				return err
			}
			d.Cabinets = append(d.Cabinets, result.Cabinets...)

			s := session.New(e.cfg, nil, e.log)
			defer s.Close()
			s.RestoreDesign(d)
			s.Recalc()

			if err := e.saveDesign(designPath, s.CaptureDesign(d.Name)); err != nil {
				return err
			}
			cmd.Printf("Imported %d cabinet(s) into %s", len(result.Cabinets), designPath)
			if n := len(result.Errors); n > 0 {
				cmd.Printf(" (%d row(s) skipped)", n)
			}
			cmd.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&designPath, "design", "d", "", "design file to add cabinets to (default derives from the schedule name)")
	cmd.Flags().StringVar(&viewID, "view", "", "place cabinets that carry no view on this view")
	return cmd
}

// runImport picks the importer by file extension.
func runImport(path string) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importer.ImportCSV(path), nil
	case ".xlsx", ".xls":
		return importer.ImportExcel(path), nil
	case ".dxf":
		return importer.ImportDXF(path), nil
	default:
		return importer.ImportResult{}, fmt.Errorf("unsupported schedule format %q", filepath.Ext(path))
	}
}

// loadOrNewDesign reads a design file, or starts a fresh design named
// after the file when it does not exist.
func loadOrNewDesign(path string) (project.Design, error) {
	d, err := project.LoadDesign(path)
	if err == nil {
		return d, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return project.NewDesign(designName(path)), nil
	}
	return project.Design{}, err
}

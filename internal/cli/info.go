package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
	"github.com/rodor-repo/ThreeJS-sub001/internal/project"
)

// newInfoCmd creates the `info` command. With a design file it prints
// a summary of the evaluated design; without arguments it lists the
// designs in the default design directory.
func newInfoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "info [design file]",
		Short: "Summarize a design, or list saved designs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listDesigns(cmd, e)
			}
			return printInfo(cmd, e, args[0])
		},
	}
}

func listDesigns(cmd *cobra.Command, e *env) error {
	dir := project.DefaultDesignDir()
	names, err := project.ListDesigns(dir)
	if err != nil {
		return fmt.Errorf("failed to list designs: %w", err)
	}

	if len(names) == 0 {
		cmd.Printf("No designs in %s\n", dir)
	} else {
		cmd.Printf("Designs in %s:\n", dir)
		for _, name := range names {
			cmd.Printf("  %s\n", name)
		}
	}

	if len(e.cfg.RecentDesigns) > 0 {
		cmd.Println("\nRecent:")
		for _, path := range e.cfg.RecentDesigns {
			cmd.Printf("  %s\n", path)
		}
	}
	return nil
}

func printInfo(cmd *cobra.Command, e *env, path string) error {
	s, d, err := e.openSession(path)
	if err != nil {
		return err
	}
	defer s.Close()
	s.Recalc()

	scene := s.Scene()
	cfg := s.Config()

	unplaced := 0
	for _, c := range scene.Cabinets {
		if !c.InView() {
			unplaced++
		}
	}

	formulas := 0
	for _, byGD := range d.Formulas {
		formulas += len(byGD)
	}

	cmd.Printf("Design:    %s\n", d.Name)
	cmd.Printf("Saved:     %s\n", d.SavedAt)
	cmd.Printf("Room:      %.0f x %.0f mm\n", scene.Room.Width, scene.Room.Height)
	cmd.Printf("Cabinets:  %d", len(scene.Cabinets))
	if unplaced > 0 {
		cmd.Printf(" (%d unplaced)", unplaced)
	}
	cmd.Println()
	if formulas > 0 {
		cmd.Printf("Formulas:  %d\n", formulas)
	}

	views := scene.ViewIDs()
	if len(views) > 0 {
		cmd.Println()
		for i, viewID := range views {
			cmd.Printf("View %d: %s - %d cabinets\n", i+1, viewID, len(scene.InView(viewID)))
		}
	}

	panels := scene.CutList()
	if len(panels) == 0 {
		return nil
	}
	total := 0
	for _, p := range panels {
		total += p.Quantity
	}
	estimate := model.EstimateMaterial(panels, cfg.SheetWidth, cfg.SheetHeight, cfg.WastePercent, cfg.PricePerSheet)
	banding := model.CalculateEdgeBanding(panels, cfg.WastePercent)

	cmd.Println()
	cmd.Printf("Panels:    %d to cut\n", total)
	cmd.Printf("Sheets:    %d (incl. %.0f%% waste)\n", estimate.SheetsWithWaste, estimate.WastePercent)
	if estimate.EstimatedCost > 0 {
		cmd.Printf("Cost:      %.2f\n", estimate.EstimatedCost)
	}
	cmd.Printf("Banding:   %.1f m\n", banding.TotalWithWasteM)
	return nil
}

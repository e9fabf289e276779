package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRecalcCmd creates the `recalc` command: evaluate a design's
// formulas, repack its rows, and save the result back.
func newRecalcCmd(e *env) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "recalc [design file]",
		Short: "Re-evaluate formulas and repack a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s, d, err := e.openSession(path)
			if err != nil {
				return err
			}
			defer s.Close()

			changed := s.Recalc()
			s.Realign()
			e.log.Info("recalculated design",
				zap.String("name", d.Name),
				zap.Int("changed", changed))

			if dryRun {
				cmd.Printf("%s: %d value(s) would change\n", d.Name, changed)
				return nil
			}

			if err := e.saveDesign(path, s.CaptureDesign(d.Name)); err != nil {
				return err
			}
			cmd.Printf("%s: %d value(s) changed\n", d.Name, changed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without saving")
	return cmd
}

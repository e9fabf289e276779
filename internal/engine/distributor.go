package engine

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// Distributor propagates a width edit from one cabinet to its related
// partners using the scene's group and sync relations.
type Distributor struct {
	Scene  *model.Scene
	Groups *GroupStore
	Syncs  *SyncStore
	log    *zap.Logger
}

// NewDistributor wires a distributor over a scene and its relation
// stores. A nil logger is replaced with a no-op logger.
func NewDistributor(scene *model.Scene, groups *GroupStore, syncs *SyncStore, logger *zap.Logger) *Distributor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Distributor{
		Scene:  scene,
		Groups: groups,
		Syncs:  syncs,
		log:    logger.Named("engine"),
	}
}

// ApplyGroup distributes a width delta to every group partner of the
// edited cabinet. Each partner receives its percentage share added to
// its own width and is re-anchored under its own locks. Partners with
// both edges locked are skipped. Returns the ids of partners that
// actually moved.
func (d *Distributor) ApplyGroup(edited *model.Cabinet, delta float64) []string {
	if delta == 0 {
		return nil
	}
	var adjusted []string
	for _, link := range d.Groups.Links(edited.ID) {
		partner := d.Scene.Find(link.CabinetID)
		if partner == nil {
			continue
		}
		share := delta * link.Percent / 100
		if share == 0 {
			continue
		}
		placement, err := AnchorWidth(partner, partner.Dimensions.Width+share)
		if err != nil {
			if errors.Is(err, ErrBothLocked) {
				d.log.Debug("group partner skipped, both edges locked",
					zap.String("cabinet", partner.ID))
			} else {
				d.log.Warn("group partner skipped",
					zap.String("cabinet", partner.ID), zap.Error(err))
			}
			continue
		}
		placement.Apply(partner)
		adjusted = append(adjusted, partner.ID)
	}
	return adjusted
}

// ApplySync resizes a synced cohort so the edited cabinet reaches
// newWidth while the selected members on one side absorb the delta.
// The far end of the absorbing side stays anchored and the gaps
// between members are preserved, so the cohort's outer edges do not
// drift.
//
// The cohort is active only when the edited cabinet and at least one
// of its sync partners are simultaneously selected. When inactive the
// scene is untouched and ok is false; the caller falls back to group
// and lock handling.
func (d *Distributor) ApplySync(edited *model.Cabinet, newWidth float64, selected map[string]bool) (adjusted []string, ok bool) {
	if !selected[edited.ID] {
		return nil, false
	}
	cohort := []*model.Cabinet{edited}
	for _, id := range d.Syncs.Members(edited.ID) {
		if !selected[id] {
			continue
		}
		partner := d.Scene.Find(id)
		if partner == nil || partner.ViewID != edited.ViewID {
			continue
		}
		cohort = append(cohort, partner)
	}
	if len(cohort) < 2 {
		return nil, false
	}

	sort.SliceStable(cohort, func(a, b int) bool {
		return cohort[a].Position.X < cohort[b].Position.X
	})
	i := 0
	for k, c := range cohort {
		if c.ID == edited.ID {
			i = k
			break
		}
	}

	oldX := make([]float64, len(cohort))
	oldRight := make([]float64, len(cohort))
	for k, c := range cohort {
		oldX[k] = c.Position.X
		oldRight[k] = c.Right()
	}
	delta := newWidth - edited.Dimensions.Width

	switch {
	case i < len(cohort)-1:
		// Members to the right absorb. The edited cabinet keeps its
		// left edge; the chain re-lays out rightward preserving the
		// original gaps, which leaves the rightmost right edge where
		// it was.
		share := -delta / float64(len(cohort)-1-i)
		edited.Dimensions.Width = newWidth
		prevRight := edited.Right()
		for k := i + 1; k < len(cohort); k++ {
			gap := oldX[k] - oldRight[k-1]
			cohort[k].Dimensions.Width += share
			cohort[k].Position.X = prevRight + gap
			prevRight = cohort[k].Right()
		}
	default:
		// No members to the right; the left side absorbs. The
		// leftmost keeps its left edge and the edited cabinet ends up
		// keeping its right edge.
		share := -delta / float64(i)
		cohort[0].Dimensions.Width += share
		prevRight := cohort[0].Right()
		for k := 1; k < i; k++ {
			gap := oldX[k] - oldRight[k-1]
			cohort[k].Dimensions.Width += share
			cohort[k].Position.X = prevRight + gap
			prevRight = cohort[k].Right()
		}
		gap := oldX[i] - oldRight[i-1]
		edited.Position.X = prevRight + gap
		edited.Dimensions.Width = newWidth
	}

	for _, c := range cohort {
		adjusted = append(adjusted, c.ID)
	}
	d.log.Debug("sync cohort resized",
		zap.String("edited", edited.ID),
		zap.Float64("delta", delta),
		zap.Int("cohort", len(cohort)))
	return adjusted, true
}

package export

import (
	"fmt"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// dxfTextHeight is the annotation text height in drawing units (mm).
const dxfTextHeight = 40.0

// wallLayerName holds the room outline and annotations.
const wallLayerName = "WALL"

// dxfLayerColors assigns an AutoCAD color index to each cabinet type
// layer. The palette only has seven indexed colors, so related types
// share one.
var dxfLayerColors = map[model.CabinetType]color.ColorNumber{
	model.TypeBase:       color.Green,
	model.TypeTop:        color.Blue,
	model.TypeTall:       color.Magenta,
	model.TypeWardrobe:   color.Magenta,
	model.TypePanel:      color.Cyan,
	model.TypeFiller:     color.Red,
	model.TypeKicker:     color.Red,
	model.TypeBulkhead:   color.Yellow,
	model.TypeBenchtop:   color.Cyan,
	model.TypeUnderPanel: color.Yellow,
	model.TypeAppliance:  color.White,
}

// ExportDXF writes one view's elevation as a DXF drawing. Coordinates
// are in mm with the room origin at the bottom left, matching the
// scene's own coordinate system. Each cabinet type goes on its own
// layer so CAD users can toggle carcasses, kickers, and bulkheads
// independently.
func ExportDXF(path string, scene *model.Scene, viewID string) error {
	if scene == nil {
		return fmt.Errorf("no scene to export")
	}
	members := scene.InView(viewID)
	if len(members) == 0 {
		return fmt.Errorf("view %q has no cabinets", viewID)
	}

	d := dxf.NewDrawing()

	// Room outline and title on the wall layer.
	if _, err := d.AddLayer(wallLayerName, color.White, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to create wall layer: %w", err)
	}
	room := scene.Room
	d.LwPolyline(true,
		[]float64{0, 0},
		[]float64{room.Width, 0},
		[]float64{room.Width, room.Height},
		[]float64{0, room.Height})
	d.Text(fmt.Sprintf("VIEW %s", strings.ToUpper(viewID)), 0, room.Height+dxfTextHeight, 0, dxfTextHeight)

	created := map[string]bool{wallLayerName: true}
	for _, c := range members {
		if err := switchTypeLayer(d, c.Type, created); err != nil {
			return err
		}
		drawCabinetOutline(d, c)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}

// switchTypeLayer makes the layer for a cabinet type current, creating
// it on first use.
func switchTypeLayer(d *drawing.Drawing, t model.CabinetType, created map[string]bool) error {
	name := strings.ToUpper(string(t))
	if created[name] {
		if err := d.ChangeLayer(name); err != nil {
			return fmt.Errorf("failed to switch to layer %s: %w", name, err)
		}
		return nil
	}
	cl, ok := dxfLayerColors[t]
	if !ok {
		cl = color.White
	}
	if _, err := d.AddLayer(name, cl, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to create layer %s: %w", name, err)
	}
	created[name] = true
	return nil
}

// drawCabinetOutline draws one cabinet on the current layer: the outer
// rectangle, drawer dividers, door splits, and the name.
func drawCabinetOutline(d *drawing.Drawing, c *model.Cabinet) {
	x := c.Position.X
	y := c.Position.Y
	w := renderWidth(c)
	h := c.Dimensions.Height

	d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h})

	// Drawer fronts stack top-down; dividers at cumulative heights
	// measured from the cabinet top.
	if c.Drawers.Enabled && len(c.Drawers.Heights) > 1 {
		cum := 0.0
		for _, dh := range c.Drawers.Heights[:len(c.Drawers.Heights)-1] {
			cum += dh
			ly := y + h - cum
			d.Line(x, ly, 0, x+w, ly, 0)
		}
	}

	if c.Doors > 1 {
		doorW := w / float64(c.Doors)
		for i := 1; i < c.Doors; i++ {
			lx := x + doorW*float64(i)
			d.Line(lx, y, 0, lx, y+h, 0)
		}
	}

	// Name label inside the lower left corner when there is room for it.
	if w > 4*dxfTextHeight && h > 2*dxfTextHeight {
		d.Text(c.Name, x+dxfTextHeight/2, y+dxfTextHeight/2, 0, dxfTextHeight)
	}
}

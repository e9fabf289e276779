package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Room defaults applied to new designs
	DefaultRoomWidth  float64 `json:"default_room_width"`
	DefaultRoomHeight float64 `json:"default_room_height"`

	// Drawer height bounds in mm
	DrawerMinHeight float64 `json:"drawer_min_height"`
	DrawerMaxHeight float64 `json:"drawer_max_height"`

	// Formula engine debounce delays in milliseconds
	RecalcDelayMS  int `json:"recalc_delay_ms"`
	RealignDelayMS int `json:"realign_delay_ms"`

	// Material estimation defaults
	SheetWidth    float64 `json:"sheet_width"`
	SheetHeight   float64 `json:"sheet_height"`
	WastePercent  float64 `json:"waste_percent"`
	PricePerSheet float64 `json:"price_per_sheet"`

	// Application preferences
	RecentDesigns []string `json:"recent_designs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultRoomWidth:  4000,
		DefaultRoomHeight: 2700,
		DrawerMinHeight:   50,
		DrawerMaxHeight:   2000,
		RecalcDelayMS:     300,
		RealignDelayMS:    800,
		SheetWidth:        2400,
		SheetHeight:       1200,
		WastePercent:      15,
		PricePerSheet:     0,
		RecentDesigns:     []string{},
	}
}

// maxRecentDesigns caps the recent designs list.
const maxRecentDesigns = 10

// AddRecentDesign moves or inserts a design path at the front of the
// recent list, dropping duplicates and trimming to the cap.
func (c *AppConfig) AddRecentDesign(path string) {
	recent := make([]string, 0, len(c.RecentDesigns)+1)
	recent = append(recent, path)
	for _, p := range c.RecentDesigns {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentDesigns {
		recent = recent[:maxRecentDesigns]
	}
	c.RecentDesigns = recent
}

package leveldata

// Default arena dimensions, in world units.
const (
	defaultWidth  = 640
	defaultHeight = 360
	wallThickness = 16
)

// DefaultArena returns the built-in arena: a walled rectangle with two
// spawn points facing each other across the center line. Used when no TMX
// arena is supplied, and by tests.
func DefaultArena() *ArenaData {
	return &ArenaData{
		Width:  defaultWidth,
		Height: defaultHeight,
		Walls: []WallRect{
			{X: 0, Y: 0, W: defaultWidth, H: wallThickness},                                                          // top
			{X: 0, Y: defaultHeight - wallThickness, W: defaultWidth, H: wallThickness},                              // bottom
			{X: 0, Y: wallThickness, W: wallThickness, H: defaultHeight - 2*wallThickness},                           // left
			{X: defaultWidth - wallThickness, Y: wallThickness, W: wallThickness, H: defaultHeight - 2*wallThickness}, // right
		},
		Spawns: []SpawnPoint{
			{X: 160, Y: 176, Index: 0},
			{X: 464, Y: 176, Index: 1},
		},
	}
}

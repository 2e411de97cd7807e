// Package leveldata provides TMX arena parsing. It is pure data with no
// dependency on the simulation packages; both peers load the same arena file
// (or the built-in default) before a match, so arena geometry is shared
// configuration rather than replicated state.
package leveldata

// ArenaData holds everything the spawner needs to materialize world geometry
// and place players at round start.
type ArenaData struct {
	Width  float64
	Height float64
	Walls  []WallRect
	Spawns []SpawnPoint
}

// WallRect is one solid arena rectangle.
type WallRect struct {
	X, Y, W, H float64
}

// SpawnPoint is a player spawn location. Index binds it to a player slot.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

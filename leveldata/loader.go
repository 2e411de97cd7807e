package leveldata

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/lafriks/go-tiled"
)

// Object group names the loader expects in the TMX file.
const (
	wallsGroupName  = "Walls"
	spawnsGroupName = "PlayerSpawn"
)

// LoadArena parses a TMX file and returns the arena geometry (solid wall
// rectangles and player spawn points). It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	arenaMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	arena := &ArenaData{
		Width:  float64(arenaMap.Width * arenaMap.TileWidth),
		Height: float64(arenaMap.Height * arenaMap.TileHeight),
	}

	for _, og := range arenaMap.ObjectGroups {
		switch og.Name {
		case wallsGroupName:
			for _, o := range og.Objects {
				arena.Walls = append(arena.Walls, WallRect{
					X: o.X,
					Y: o.Y,
					W: o.Width,
					H: o.Height,
				})
			}

		case spawnsGroupName:
			for _, o := range og.Objects {
				arena.Spawns = append(arena.Spawns, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	if len(arena.Walls) == 0 {
		return nil, fmt.Errorf("arena %s: no %q object group or it is empty", tmxPath, wallsGroupName)
	}

	// Sort spawns by slot index, ties broken left-to-right, so spawn-to-player
	// assignment is identical on every peer regardless of TMX object order.
	sort.Slice(arena.Spawns, func(i, j int) bool {
		if arena.Spawns[i].Index != arena.Spawns[j].Index {
			return arena.Spawns[i].Index < arena.Spawns[j].Index
		}
		return arena.Spawns[i].X < arena.Spawns[j].X
	})

	return arena, nil
}

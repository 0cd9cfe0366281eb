package adminapi

import (
	"embed"

	"github.com/gin-contrib/static"
)

// embeddedDebugUI is the single-page table of recently decoded
// datagrams, grounded on the teacher's SPA-embedding pattern
// (internal/api/spa_mount.go) but scaled down to one static page instead
// of a full Angular build.
//
//go:embed dist
var embeddedDebugUI embed.FS

func debugFS() static.ServeFileSystem {
	fs, err := static.EmbedFolder(embeddedDebugUI, "dist")
	if err != nil {
		panic("adminapi: failed to load embedded debug UI: " + err.Error())
	}
	return fs
}

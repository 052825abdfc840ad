package controller

import (
	"github.com/walteh/xmpsync/pkg/asset"
)

// 🎬 Action is one entry of the interactive menu
type Action int

const (
	ActionSyncImages Action = iota + 1
	ActionSyncVideos
	ActionCleanOriginals
	ActionCleanSidecars
)

// Actions lists the menu in display order; the menu number is the index + 1.
var Actions = []Action{
	ActionSyncImages,
	ActionSyncVideos,
	ActionCleanOriginals,
	ActionCleanSidecars,
}

type actionDef struct {
	title     string
	kinds     []asset.Kind
	noun      string // what discovery reports
	verb      string // "sync" or "clean"
	confirm   string // format with the asset count
	cancelled string
	sync      bool
}

var defs = map[Action]actionDef{
	ActionSyncImages: {
		title:     "Sync images with its metadata.",
		kinds:     []asset.Kind{asset.KindImage},
		noun:      "images",
		verb:      "sync",
		confirm:   "Are you sure to sync %d images?",
		cancelled: "Images sync cancelled!",
		sync:      true,
	},
	ActionSyncVideos: {
		title:     "Sync videos with its metadata.",
		kinds:     []asset.Kind{asset.KindVideo},
		noun:      "videos",
		verb:      "sync",
		confirm:   "Are you sure to sync %d videos?",
		cancelled: "Videos sync cancelled!",
		sync:      true,
	},
	ActionCleanOriginals: {
		title:     `Remove "_original" files.`,
		kinds:     []asset.Kind{asset.KindImage, asset.KindVideo},
		noun:      "assets",
		verb:      "clean",
		confirm:   "Are you sure to clean original files of %d assets?",
		cancelled: "Original files cleaning cancelled!",
	},
	ActionCleanSidecars: {
		title:     "Remove metadata files.",
		kinds:     []asset.Kind{asset.KindImage, asset.KindVideo},
		noun:      "assets",
		verb:      "clean",
		confirm:   "Are you sure to clean %d metadata files?",
		cancelled: "Metadata files cleaning cancelled!",
	},
}

// Title returns the menu text of the action.
func (a Action) Title() string {
	return defs[a].title
}

// Valid reports whether a names a menu entry.
func (a Action) Valid() bool {
	_, ok := defs[a]
	return ok
}

func titles() []string {
	out := make([]string, len(Actions))
	for i, a := range Actions {
		out[i] = a.Title()
	}
	return out
}

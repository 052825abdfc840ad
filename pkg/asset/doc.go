/*
Package asset discovers media files and pairs them with their XMP sidecars.

	photos/
	├── DSCF0001.JPG   ─┐
	├── DSCF0001.raf    ├─ one image asset
	├── DSCF0001.xmp   ─┘
	├── DSCF0002.JPG      (no sidecar, skipped)
	└── clips/
	    ├── DSCF0003.mov ─┐ one video asset
	    └── DSCF0003.xmp ─┘

Images are matched in the root only and their extension is compared
case-sensitively. Videos are matched recursively and their extension is
compared case-insensitively. Names are split at the last dot, so
"trip.day1.JPG" pairs with "trip.day1.xmp".
*/
package asset

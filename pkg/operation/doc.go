/*
Package operation implements the batch operations run over discovered assets.

	+-------------+
	|   asset     |
	| (discovery) |
	+------+------+
	       | []MediaAsset
	+------+------+        +-------------+
	|   Runner    +------->|  Operation  |
	| (workers)   |        | sync/clean  |
	+------+------+        +------+------+
	       |                      |
	+------+------+        +------+------+
	|   status    |        |  exiftool   |
	| (progress)  |        | (external)  |
	+-------------+        +-------------+

🎯 Operations:
  - sync: import the sidecar into the primary and secondary file, then derive
    the file timestamps from DateCreated, optionally removing the
    "_original" backup exiftool leaves behind
  - clean originals: remove "<file>_original" for each media file
  - clean sidecars: remove each asset's XMP sidecar

A failed asset never stops the batch. Every asset gets a Result and the
Report lists the failures, so nothing is reported as synced unless exiftool
exited cleanly.

🔍 Example:

	op := operation.NewSyncOperation(tool, "images", true)
	runner := operation.NewRunner(4, status.NewReporter(os.Stdout, op.Labels(), true))
	report := runner.Run(ctx, op, assets)
*/
package operation

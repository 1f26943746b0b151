/*
Package operation copies resolved BOM items into a target directory.

	+-------------+
	|   match     |
	| (resolved)  |
	+------+------+
	       |
	+------+------+
	|   Copier    |
	| (one batch) |
	+------+------+
	       |
	+------+------+
	|  log.Sink   |
	| (log.txt)   |
	+-------------+

🎯 Purpose:
- Creates the target directory when it is missing
- Copies each found item to dest/TargetFileName
- Skips items without a source, and existing targets when overwrite is off
- Reports per-item progress and a session log

🔄 Flow:
1. Ensure the target directory exists (fatal for the whole batch if not)
2. Log the session banner
3. For each item in order: skip, copy or fail, then report progress
4. Log the session summary

⚡ Guarantees:
- Copied + Skipped + Errors + Cancelled equals the number of submitted items
- One failing item never stops the rest of the batch
- Targets are written through a temp file and a rename

🔍 Example:

	copier := operation.NewCopier(operation.Options{Events: logger})
	result, err := copier.Copy(ctx, queue.Found(items), "/out", cfg.OverwriteExisting)
*/
package operation

/*
Package config loads, validates and saves bomcopy settings.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |  JSON   | |    HCL    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- BOM layout (name, material and quantity columns, header rows)
- Naming rule (BOM extension, variant suffix, target extension)
- Copy behaviour and remembered directories
- Ignore patterns for the source scan and the session log location

🔄 Flow:
1. Pick a parser from the file extension
2. Decode on top of Default(), so omitted keys keep their stock values
3. Validate and normalize (distinct columns, dot-prefixed extensions)
4. Save back atomically under a file lock

A missing file is not an error: Load returns Default().

🔍 Example:

	cfg, err := config.Load(ctx, "bomcopy.yaml")
	if err != nil {
		return err
	}
	entries, err := bom.Load(ctx, cfg.LastBomFile, cfg.Layout())
*/
package config

/*
Package status renders search passes and copy results for the terminal.

	+-------------+     +-------------+
	|   match     |     |  operation  |
	|  (items)    |     |  (result)   |
	+------+------+     +------+------+
	       |                   |
	       +---------+---------+
	                 |
	          +------+------+
	          |   status    |
	          |  (UI text)  |
	          +-------------+

🎯 Purpose:
- One aligned, colored line per resolved item
- Progress, preflight and summary messages for a copy
- Truncated error lists that point at the session log file

The package never touches the filesystem; everything it returns is text.
*/
package status

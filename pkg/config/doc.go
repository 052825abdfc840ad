/*
Package config manages configuration loading and validation for xmpsync.

	            +-------------+
	            |   Default   |
	            +------+------+
	                   | Apply(File)
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

Every field of a config file is optional; unset fields keep the built-in
default. Command line flags are applied by the caller after Load.

🔍 Example (.xmpsync.yaml):

	workers: 4
	ignore:
	  - "exports/**"
	exiftool:
	  path: /opt/homebrew/bin/exiftool
	extensions:
	  raw: dng

The same in HCL:

	workers = 4
	ignore  = ["exports/**"]

	exiftool {
	  path = "${home}/bin/exiftool"
	}
*/
package config

// Package config loads toyreact.json (or toyreact.yaml) configuration.
//
// A missing file is not an error: Load returns defaults. Values present in
// the file override defaults field by field.
//
//	{
//	  "name": "demo",
//	  "render": {"keepStaleChildren": false, "minify": true},
//	  "inspect": {"host": "localhost", "port": 7070},
//	  "log": {"level": "debug"},
//	  "metrics": {"enabled": true, "namespace": "toyreact"}
//	}
package config

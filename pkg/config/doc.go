// Package config loads the monitor configuration from YAML.
//
// Every setting has a default, so the file is optional and may be partial:
//
//	sleep_seconds: 300
//	ping:
//	  targets: [resolver1.opendns.com, "tcp://192.168.1.1:53"]
//	database:
//	  path: /var/lib/weewx/weewx.sdb
//	state:
//	  backend: bolt
//	  path: /var/lib/meteowatch/state.db
//	metrics:
//	  textfile: /var/lib/node_exporter/meteowatch.prom
//
// Command line flags override the file.
package config

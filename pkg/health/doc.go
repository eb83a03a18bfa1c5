/*
Package health implements the checks that decide whether the weather station
host is working.

Two checks make up a verdict:

	┌──────────────────────┐   ┌──────────────────────┐
	│ ConnectivityChecker  │   │  FreshnessChecker    │
	│ ping A | ping B | .. │   │  weewx archive, 15m  │
	└──────────┬───────────┘   └──────────┬───────────┘
	           └────────────┬─────────────┘
	                        ▼
	                   Evaluator (AND)

Connectivity passes if any configured endpoint answers. Every endpoint is
probed each cycle so that the logs show which ones failed. Endpoints are ping
targets by default; a target written as tcp://host:port is probed with a TCP
dial and an http:// or https:// URL with an HTTP request.

Freshness passes if the measurement archive holds at least one non-null
reading in the trailing window. An empty window and a window of nulls fail
with distinct messages.

Both checks always run. With the no-ping option the connectivity check is
treated as passed without sending any probe.

All checkers implement Checker and return a Result carrying the verdict, a
human readable message and timing.
*/
package health

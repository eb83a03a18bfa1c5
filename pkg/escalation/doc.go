/*
Package escalation decides when an unhealthy host is rebooted.

A failing host is not rebooted as soon as a check fails. The host first has to
stay up for a required amount of time, and that requirement grows every time a
reboot did not fix the problem:

	previous level   required uptime before next reboot
	none             15m
	0                15m
	15               30m
	30               3h
	180              12h
	720              12h   (ceiling)

The level consumed by a reboot is persisted through a Store before the reboot is
issued, so the next boot continues from it. A passing check stores 0, which
resets the ladder.

# Decision

Engine.Decide maps (uptime, verdict, stored level) to one of four actions:

  - ActionSkip: uptime below the minimum (5m by default); nothing is checked or stored
  - ActionReset: the check passed; store 0
  - ActionWait: the check failed but uptime has not exceeded the requirement
  - ActionReboot: the check failed and uptime is strictly greater than the requirement
*/
package escalation

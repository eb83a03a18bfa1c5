/*
Package monitor drives the check loop.

Each cycle reads the uptime, skips young hosts, evaluates the health checks
and feeds the verdict to the escalation engine:

	uptime < min ──────────────────────────────► skip
	healthy ───────────────────────────────────► store 0
	failing ─► read level ─► next step ─┬─ uptime > step ─► store step, mail, reboot
	                                    └─ otherwise ─────► wait

The escalation store is only read when the check fails, and the new level is
written before the reboot command runs. Run sleeps between cycles and returns
when its context is cancelled.
*/
package monitor

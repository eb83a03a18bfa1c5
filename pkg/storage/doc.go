/*
Package storage persists the escalation level between reboots.

Two backends implement escalation.Store. Both hold exactly one scalar, the level
consumed by the last reboot, under section/bucket "meteowatch" and key
"reboot_timeout".

IniStore (default) uses a small INI file, by default ~/.meteowatch:

	[meteowatch]
	reboot_timeout = 30

Missing files, sections and keys read as "no level" without a warning, because
that is the state of a host that never failed. Empty files, parse errors and
non-numeric or negative values read as "no level" and log a warning. Only I/O
failures such as permission errors are returned, wrapped in escalation.ErrStore.

Writes never merge: the file is regenerated and replaced through a temp file in
the same directory followed by fsync and rename, so a crash mid-write leaves the
previous content intact.

BoltStore keeps the same value in a BoltDB file for hosts that prefer a
transactional store. The database is opened once with a one second lock timeout,
so a second monitor instance on the same file fails fast instead of racing.
*/
package storage

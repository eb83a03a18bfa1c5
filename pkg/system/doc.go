// Package system reads the host uptime and triggers reboots.
package system

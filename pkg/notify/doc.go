// Package notify tells a human that the host is about to reboot.
//
// The only delivery channel is the local MTA: the message is addressed to
// root and piped into sendmail, so forwarding follows the host's aliases.
package notify

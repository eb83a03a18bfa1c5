// Package weewx reads recent measurements from the SQLite archive written by
// the weewx weather station logger.
package weewx

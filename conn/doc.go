// Package conn opens the raw I²C and SPI buses used to talk to display controllers.
package conn

// Package connectors holds clients for external record sources. Each
// connector implements the OpinionSource port for one upstream API.
//
// CourtListener is currently the only source.
package connectors

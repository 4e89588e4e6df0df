// Package http contains the chi HTTP handlers for the dashboard server:
// summary data access, pipeline operation control, health, WebSocket
// upgrade, and the static dashboard itself.
package http

// Package ecp implements the client side of the Roku External Control
// Protocol: an unauthenticated HTTP+XML control interface every Roku
// device exposes on port 8060.
//
// Each operation is a single request against one device - a GET for
// queries (device info, installed apps, active app, media state) and a
// POST with an empty body for commands (keypress, literal text input, app
// launch). XML replies are mapped to normalized records. There are no
// retries; every call is one attempt with a fixed timeout.
//
// # Error Taxonomy
//
// Failures are classified into three kinds: the device refusing the
// connection (unreachable), no response or name-resolution failure
// (timeout), and a reply status of 400 or higher (protocol error). Two
// conditions are deliberately not errors: an active-app reply without an
// app id means the home screen is in the foreground (nil result), and a
// failed media-state query returns an unavailable record because not
// every device supports the query.
//
// # Usage Example
//
//	client := ecp.NewClient("192.168.1.34")
//	if err := client.Keypress(ctx, "Home"); err != nil {
//	    if kind, ok := ecp.KindOf(err); ok && kind == ecp.KindUnreachable {
//	        // device is off or gone
//	    }
//	}
package ecp

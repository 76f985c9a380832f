// Package paths provides path handling for pubtree.
//
// It resolves user supplied locations (expanding ~ and making them
// absolute) and the XDG Base Directory locations pubtree writes to:
//
//   - $XDG_STATE_HOME/pubtree/pubtree.log for the log file
//   - ~/.public_html as the default output directory
package paths

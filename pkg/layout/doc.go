// Package layout maps logical UI regions to canvases and keeps them consistent
// across resizes.
//
// Two layout kinds exist and the set is closed: [Conversation] (a three-pane
// chat layout) and [Menu] (a single popup pane). Both implement [Layout],
// which is sealed so a switch over [Kind] stays exhaustive.
//
// # Conversation
//
//	+---------------------------+  <- status canvas (external, read-only)
//	|                           |
//	|  content    trust = b/2   |
//	|                           |
//	+---------------------------+
//	|  input      trust = b     |  height >= regular + 2*margin
//	+---------------------------+
//	|  predictive trust = b     |  regular + 2*margin, bottom-pinned
//	+---------------------------+
//
// Content is the least trusted pane because it renders application data.
// Resizing grows or shrinks the input pane into the content pane and is
// refused, without touching the registry, when content would be left with
// 64 px or less. A refused resize reports the input canvas's unchanged
// bottom-right corner rather than the content's.
//
// # Menu
//
// A dark pane 35 px in from each side and 100 px below the top of the screen.
// Resize clamps the height to [small line height, screen height - 100] and
// always commits.
//
// # Atomicity
//
// Resize either updates every affected clip rectangle and repaints, or leaves
// the registry bit-identical. When the surface refuses a paint during a
// committed resize, the previous clip rectangles are restored before the
// BACKEND_FAILURE error is returned.
//
// Layouts hold no locks. Callers serialize create, clear and resize calls
// against a registry.
package layout

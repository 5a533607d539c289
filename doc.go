// Package lenient is the Composition Root of the lenient transcoding pipeline.
//
// It wires the dialect state machine (pkg/dialect) to the converters
// (pkg/converters), the notification policy (pkg/notify) and the disk
// adapter (pkg/adapters/fs), using the Hexagonal Architecture pattern of
// the rest of the module: the host editor is a set of interfaces in
// pkg/core and never a concrete dependency.
//
// Philosophy:
//
// A document is stored in its canonical syntax (JS or JSON) and presented
// in a concise lenient dialect. Conversion happens on every path the text
// travels, and a failed conversion never corrupts or loses user data.
//
// Features:
//
//   - **Transactional Saves**: content is converted before the destination is opened.
//   - **Streaming Reads**: disk content is converted on its way into the editor.
//   - **Safe Switches**: unsaved edits are transcoded in memory; failures revert the grammar.
//   - **Stale Error Dismissal**: a successful save withdraws earlier save/convert errors.
//
// Usage:
//
//	sub, err := lenient.New(
//		lenient.WithLogger(logger),
//		lenient.WithNotifier(hostNotifier),
//	)
//	err = sub.Activate(workspace)
//	defer sub.Deactivate()
package lenient

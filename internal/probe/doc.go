// Package probe reads image headers without decoding pixel data. It backs
// analyze mode, where every eligible file is inspected but nothing is
// written.
package probe

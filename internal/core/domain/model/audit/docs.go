// Package audit models the append-only log of queue changes: who did what, and when.
// Detail strings are built here so the wording stays identical across use cases.
package audit

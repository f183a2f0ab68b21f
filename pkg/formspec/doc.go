// Package formspec describes the fields of each prediction flow: their kind,
// label, the placeholder used as the "unselected" entry of a select, and
// which key of the options payload feeds them. The defaults ship embedded and
// can be replaced with documents loaded from any fs.FS.
package formspec

// Package filesystem turns paths on an afero.Fs into entries the icon
// resolver can query.
//
// Facts are read once, when the entry is created. A symlink reports the
// kind of its target (so a link to a directory is a directory) plus the
// link fact; a link whose target is missing is an orphan. An entry whose
// metadata cannot be read at all is a dummy, and every fact other than
// hidden and dummy is unknown for it.
package filesystem

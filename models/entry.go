package models

// EntryType discriminates the three kinds of filesystem object a
// BackupEntry can describe. Serialization uses this explicit discriminant
// rather than Go interface polymorphism, so that old and new binaries agree
// on wire layout even as variant payloads evolve.
type EntryType uint8

const (
	// EntryTypeFile marks a regular file entry; FileMeta.BlockListId
	// names the BackupObject holding its chunk list.
	EntryTypeFile EntryType = iota
	// EntryTypeDir marks a directory entry. No payload beyond metadata.
	EntryTypeDir
	// EntryTypeLink marks a symbolic link entry; LinkMeta.Target holds
	// the link's textual target.
	EntryTypeLink
)

// String renders a lowercase name for t, for logging and diagnostics.
func (t EntryType) String() string {
	switch t {
	case EntryTypeFile:
		return "file"
	case EntryTypeDir:
		return "dir"
	case EntryTypeLink:
		return "link"
	default:
		return "unknown"
	}
}

// UnixCommonMeta holds the POSIX ownership and permission bits shared by
// every entry type.
type UnixCommonMeta struct {
	Uid  uint32 `msgpack:"uid"`
	Gid  uint32 `msgpack:"gid"`
	Mode uint32 `msgpack:"mode"`
}

// UnixFsMetaKind discriminates the platform metadata variant carried by a
// BackupEntry, mirroring its EntryType but kept as a separate tag so the
// metadata union can evolve independently of the entry-type union.
type UnixFsMetaKind uint8

const (
	UnixFsMetaFile UnixFsMetaKind = iota
	UnixFsMetaDir
	UnixFsMetaSymlink
)

// UnixFsMeta is the POSIX platform metadata record attached to every
// BackupEntry. Only the fields relevant to Kind are meaningful:
//   - File:    Common, Size
//   - Dir:     Common
//   - Symlink: Target
type UnixFsMeta struct {
	Kind   UnixFsMetaKind `msgpack:"kind"`
	Common UnixCommonMeta `msgpack:"common"`
	Size   int64          `msgpack:"size,omitempty"`
	Target string         `msgpack:"target,omitempty"`
}

// BackupEntry is one record in an EntryList: a relative, slash-normalized
// path plus a type discriminant and its platform metadata.
//
// Exactly one of FileMeta or LinkMeta is meaningful, selected by Type; Dir
// entries carry neither.
type BackupEntry struct {
	Name  string     `msgpack:"name"`
	Type  EntryType  `msgpack:"entry_type"`
	Meta  UnixFsMeta `msgpack:"meta"`
	// FileMeta is populated only when Type == EntryTypeFile.
	FileMeta *FileEntryMeta `msgpack:"file_meta,omitempty"`
	// LinkMeta is populated only when Type == EntryTypeLink.
	LinkMeta *LinkEntryMeta `msgpack:"link_meta,omitempty"`
}

// FileEntryMeta is the File-variant payload of a BackupEntry: the BlockId
// of the BackupObject enumerating the file's ciphertext chunks.
type FileEntryMeta struct {
	BlockListId BlockId `msgpack:"block_list_id"`
}

// LinkEntryMeta is the Link-variant payload of a BackupEntry: the textual
// target the symlink pointed to at backup time.
type LinkEntryMeta struct {
	Target string `msgpack:"target"`
}

// EntryList is the ordered sequence of BackupEntry records describing one
// snapshot. Order is the source walker's natural depth-first order; entries
// are never resorted.
type EntryList struct {
	Entries []BackupEntry `msgpack:"entries"`
}

// BackupObject is the ordered sequence of BlockIds representing a single
// file's ciphertext chunks, in the order they must be concatenated to
// reconstruct the plaintext.
type BackupObject struct {
	Blocks []BlockId `msgpack:"blocks"`
}

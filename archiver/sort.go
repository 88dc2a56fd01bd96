package archiver

import (
	"sort"
	"time"
)

// backupFiles is used to satisfy a sort.Sort interface.
type backupFiles struct {
	Files  []string
	stamps []time.Time
	seqs   []int
}

// Len is part of sort.Interface.
func (b *backupFiles) Len() int {
	return len(b.Files)
}

// Swap is part of sort.Interface. We track three slices, so swap them all!
func (b *backupFiles) Swap(i, j int) {
	b.Files[i], b.Files[j] = b.Files[j], b.Files[i]
	b.stamps[i], b.stamps[j] = b.stamps[j], b.stamps[i]
	b.seqs[i], b.seqs[j] = b.seqs[j], b.seqs[i]
}

// Less is part of the sort.Sort interface.
// Backups sort by the time stamp embedded in their name, oldest first.
// Two rotations inside one time stamp window are ordered by their
// collision sequence number.
func (b *backupFiles) Less(i, j int) bool {
	if b.stamps[i].Equal(b.stamps[j]) {
		return b.seqs[i] < b.seqs[j]
	}

	return b.stamps[i].Before(b.stamps[j])
}

// Our backupFiles interface must satify a sort.Interface.
var _ sort.Interface = (*backupFiles)(nil)

package ports

// ChangeDetector filters file change notifications down to real content changes.
//
//go:generate mockgen -source=change_detector.go -destination=mocks/mock_change_detector.go -package=mocks
type ChangeDetector interface {
	// Changed returns the subset of paths whose content differs from the last
	// time they were seen. Paths seen for the first time, removed paths and
	// paths that cannot be read count as changed.
	Changed(paths []string) []string
}

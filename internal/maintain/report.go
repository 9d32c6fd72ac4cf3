package maintain

// FindingKind classifies one scan finding.
type FindingKind string

const (
	// FindingMissingInclude is an \input{} target that does not exist on
	// disk. These are the only findings counted by the integrity counter.
	FindingMissingInclude FindingKind = "missing-include"

	// FindingMainMissingInclude is an unresolved \input{} in the root
	// document. Reported, not counted.
	FindingMainMissingInclude FindingKind = "main-missing-include"

	// FindingUnreferencedChapter is a chapter .tex file on disk that the
	// root document never references.
	FindingUnreferencedChapter FindingKind = "unreferenced-chapter"

	// FindingEmptyDir is a directory with no contents.
	FindingEmptyDir FindingKind = "empty-dir"
)

// Finding is one integrity issue discovered during a scan.
type Finding struct {
	Kind   FindingKind
	Path   string // the file or directory the finding is about
	Source string // the file containing the reference, if any
}

// Report aggregates the findings of one full scan.
type Report struct {
	Findings []Finding
	// BrokenIncludes is the counter value after the scan: the number of
	// \input{} targets that do not exist.
	BrokenIncludes int
}

// Count returns the number of findings of the given kind.
func (r Report) Count(kind FindingKind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Scan runs the include check over the whole thesis tree, the root document
// check and the empty-directory sweep (report only), and aggregates the
// findings. The counter is reset first so repeated scans do not accumulate.
func (m *Maintainer) Scan() (Report, error) {
	m.ResetCounter()
	var report Report

	findings, err := m.CheckInputs(m.thesisDir)
	if err != nil {
		return Report{}, err
	}
	report.Findings = append(report.Findings, findings...)

	findings, err = m.CheckMain()
	if err != nil {
		return Report{}, err
	}
	report.Findings = append(report.Findings, findings...)

	findings, err = m.Cleanup(m.thesisDir, false)
	if err != nil {
		return Report{}, err
	}
	report.Findings = append(report.Findings, findings...)

	report.BrokenIncludes = m.counter
	return report, nil
}

package dedupe

import (
	"fmt"

	"github.com/billfold/billfold/pkg/bills"
	billerrors "github.com/billfold/billfold/pkg/errors"
	"github.com/billfold/billfold/pkg/schema"
)

// Dedupe reconciles one batch of candidate records against the active
// field mappings and returns the deduplicated list with a run report.
//
// Records are grouped by source document; within each group, pdf-side
// records consume at most one not-yet-consumed email-side record each,
// first match wins in input order. Records that cannot participate in
// grouping (manual origin, missing document id) and groups with only
// one origin present pass through unchanged. A failure while
// processing one group is recovered: that group's records pass
// through unmerged and the run continues.
func (d *Deduper) Dedupe(records []bills.Record, mappings []schema.FieldMapping) *Result {
	ftm := schema.Resolve(mappings)
	res := &Result{
		Report: Report{
			Input:    len(records),
			ByOrigin: make(map[bills.Origin]int, 4),
		},
	}

	// Group by source document, preserving first-seen order so the
	// output is deterministic for a given input order.
	var order []string
	groups := make(map[string][]bills.Record)
	for _, rec := range records {
		res.Report.ByOrigin[rec.Origin]++
		if rec.SourceDocumentID == "" || rec.Origin == bills.OriginManual {
			res.Records = append(res.Records, rec)
			res.Report.PassedThrough++
			continue
		}
		if _, seen := groups[rec.SourceDocumentID]; !seen {
			order = append(order, rec.SourceDocumentID)
		}
		groups[rec.SourceDocumentID] = append(groups[rec.SourceDocumentID], rec)
	}

	m := matcher{cfg: d.cfg, ftm: ftm}
	for _, docID := range order {
		out, merged, err := d.dedupeGroup(m, docID, groups[docID])
		res.Records = append(res.Records, out...)
		res.Report.Merged += merged
		res.Report.Groups++
		if err != nil {
			res.Report.GroupFailures++
			res.Errors = append(res.Errors, err)
			d.logger.Warn().
				Str("document_id", docID).
				Err(err).
				Msg("group reconciliation failed, records passed through unmerged")
		}
	}

	res.Report.Output = len(res.Records)
	d.logger.Debug().
		Int("input", res.Report.Input).
		Int("output", res.Report.Output).
		Int("merged", res.Report.Merged).
		Int("groups", res.Report.Groups).
		Int("group_failures", res.Report.GroupFailures).
		Msg("deduplication run complete")
	return res
}

// dedupeGroup reconciles one source document's records. Any panic
// raised while matching or merging (malformed values, a faulty clock)
// is converted into a GroupError and the group passes through intact.
func (d *Deduper) dedupeGroup(m matcher, docID string, group []bills.Record) (out []bills.Record, merged int, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = append([]bills.Record(nil), group...)
			merged = 0
			err = &billerrors.GroupError{
				DocumentID: docID,
				Err:        fmt.Errorf("%v", r),
			}
		}
	}()

	var pdfs, emails []bills.Record
	for _, rec := range group {
		// Anything not unambiguously pdf sits on the email side.
		if rec.Origin == bills.OriginPDF {
			pdfs = append(pdfs, rec)
		} else {
			emails = append(emails, rec)
		}
	}
	if len(pdfs) == 0 || len(emails) == 0 {
		return group, 0, nil
	}

	// Explicit consumed set: each email record is a merge partner at
	// most once, and each pdf record merges at most once.
	consumed := make(map[int]bool, len(emails))
	for _, pdf := range pdfs {
		matched := -1
		for i, email := range emails {
			if consumed[i] {
				continue
			}
			if m.isMatch(pdf, email) {
				matched = i
				break
			}
		}
		if matched < 0 {
			out = append(out, pdf)
			continue
		}
		consumed[matched] = true
		out = append(out, d.merge(pdf, emails[matched]))
		merged++
	}
	for i, email := range emails {
		if !consumed[i] {
			out = append(out, email)
		}
	}
	return out, merged, nil
}

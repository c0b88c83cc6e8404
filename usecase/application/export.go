package application

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jobdeck/backend/domain"
)

// csvColumns is the fixed export column set.
var csvColumns = []string{
	"Name",
	"Email",
	"Headline",
	"Location",
	"Status",
	"Applied Date",
	"Experience Entries",
	"Skills",
	"Cover Letter",
	"Notes",
}

const coverLetterPreviewLen = 100

// ExportCSV renders the job's applications as CSV. Owner only. Every field
// is double-quoted; embedded quotes and newlines in free-text fields are
// collapsed to spaces before quoting, so the output never needs escape
// sequences.
func (uc *UseCase) ExportCSV(ctx context.Context, jobID, callerID string) ([]byte, error) {
	job, err := uc.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	views, err := uc.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	writeCSVRow(&b, csvColumns)
	for _, v := range views {
		skills := make([]string, 0, len(v.Applicant.Skills))
		for _, s := range v.Applicant.Skills {
			skills = append(skills, s.Name)
		}

		preview := truncateRunes(v.CoverLetter, coverLetterPreviewLen)

		writeCSVRow(&b, []string{
			v.Applicant.Name,
			v.Applicant.Email,
			v.Applicant.Headline,
			v.Applicant.Location,
			string(v.Status),
			v.CreatedAt.Format("2006-01-02"),
			strconv.Itoa(v.Applicant.ExperienceCount),
			strings.Join(skills, ";"),
			preview,
			v.CompanyNotes,
		})
	}
	return []byte(b.String()), nil
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(sanitizeCSVField(f))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

// sanitizeCSVField collapses characters that would break the quoted field.
func sanitizeCSVField(s string) string {
	replacer := strings.NewReplacer("\"", " ", "\r\n", " ", "\n", " ", "\r", " ")
	return replacer.Replace(s)
}

// truncateRunes shortens s to at most n runes, never splitting a multibyte
// sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

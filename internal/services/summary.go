package services

import (
	"fmt"
	"strings"

	"github.com/wisecrew/api/internal/domain"
)

const summaryRule = "--------------------------------------"

// renderSummary produces the plaintext confirmation document downloaded
// after a successful submission.
func renderSummary(session domain.FormSession) SummaryExport {
	submission := session.Result.Submission
	fields := session.Fields

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("WISECREW SOLUTIONS APPLICATION SUMMARY\n")
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "Application ID: %s\n", submission.ID)
	fmt.Fprintf(&b, "Date: %s\n", submission.SubmittedAt)
	fmt.Fprintf(&b, "Role: %s\n", session.Context.Role)
	fmt.Fprintf(&b, "Type: %s\n", submission.Category)
	b.WriteString("\n")
	b.WriteString("APPLICANT DETAILS\n")
	b.WriteString("-----------------\n")
	fmt.Fprintf(&b, "Name: %s\n", fields.FullName)
	fmt.Fprintf(&b, "Email: %s\n", fields.Email)
	fmt.Fprintf(&b, "Phone: %s\n", fields.Phone)
	fmt.Fprintf(&b, "City: %s\n", fields.City)
	b.WriteString("\n")
	b.WriteString("EDUCATION / BACKGROUND\n")
	b.WriteString("----------------------\n")
	fmt.Fprintf(&b, "Status: %s\n", fields.Status)
	fmt.Fprintf(&b, "College: %s\n", fields.College)
	fmt.Fprintf(&b, "Degree: %s\n", fields.Degree)
	fmt.Fprintf(&b, "Mode: %s\n", fields.Mode)
	fmt.Fprintf(&b, "Start Date: %s\n", fields.StartDate)
	b.WriteString("\n")
	b.WriteString("REASON\n")
	b.WriteString("------\n")
	fmt.Fprintf(&b, "%s\n", fields.Reason)
	b.WriteString("\n")
	b.WriteString(summaryRule + "\n")
	b.WriteString("Thank you for applying to Wisecrew Solutions.\n")

	return SummaryExport{
		Filename: fmt.Sprintf("Wisecrew_App_%s.txt", submission.ID),
		Content:  b.String(),
	}
}

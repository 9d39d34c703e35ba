package minutes

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDocx renders the minutes as a styled docx document.
func WriteDocx(m *Minutes, title, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	addStyledRun(doc.AddParagraph(""), "Generated "+m.Metadata.GeneratedAt.Format("2006-01-02 15:04"), false, fontSize)

	if m.Summary != "" {
		addHeading(doc, "Summary")
		addBody(doc, m.Summary)
	}

	if len(m.Attendees) > 0 {
		addHeading(doc, "Attendees")
		for _, a := range m.Attendees {
			addBody(doc, bullet+a)
		}
	}

	if len(m.KeyPoints) > 0 {
		addHeading(doc, "Key Discussion Points")
		for i, point := range m.KeyPoints {
			addBody(doc, fmt.Sprintf("%d. %s", i+1, point))
		}
	}

	if len(m.Decisions) > 0 {
		addHeading(doc, "Decisions Made")
		for i, d := range m.Decisions {
			addBody(doc, fmt.Sprintf("%d. %s", i+1, d.Decision))
			detail := "Decided by: " + orDefault(d.MadeBy, "Team")
			if d.Timestamp != "" {
				detail += " at " + d.Timestamp
			}
			addDetail(doc, detail)
		}
	}

	if len(m.ActionItems) > 0 {
		addHeading(doc, "Action Items")
		for i, item := range m.ActionItems {
			addBody(doc, fmt.Sprintf("%d. %s", i+1, item.Task))
			addDetail(doc, "Owner: "+orDefault(item.Owner, "Unassigned"))
			addDetail(doc, "Deadline: "+orDefault(item.Deadline, "Not specified"))
			addDetail(doc, "Priority: "+orDefault(item.Priority, "medium"))
		}
	}

	if len(m.Questions) > 0 {
		addHeading(doc, "Open Questions")
		for i, q := range m.Questions {
			addBody(doc, fmt.Sprintf("%d. %s", i+1, q))
		}
	}

	if m.NextSteps != "" {
		addHeading(doc, "Next Steps")
		addBody(doc, m.NextSteps)
	}

	if len(m.TopicsDiscussed) > 0 {
		addHeading(doc, "Topics Discussed")
		for _, topic := range m.TopicsDiscussed {
			addBody(doc, bullet+topic)
		}
	}

	return doc.SaveTo(outputPath)
}

const bullet = "• "

func addHeading(doc *docx.RootDoc, text string) {
	addStyledRun(doc.AddParagraph(""), text, true, 14)
}

func addBody(doc *docx.RootDoc, text string) {
	addStyledRun(doc.AddParagraph(""), text, false, fontSize)
}

func addDetail(doc *docx.RootDoc, text string) {
	addStyledRun(doc.AddParagraph(""), "    "+text, false, fontSize-1)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

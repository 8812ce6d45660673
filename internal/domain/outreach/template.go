package outreach

// TemplateInfo describes how generated bodies are toned and wrapped.
type TemplateInfo struct {
	Description string
	Tone        string
	KeyPoints   string
	// Template wraps the generated body. Placeholders use $NAME or ${NAME}.
	Template string
}

// DefaultTemplateInfo is the 180 Degrees Consulting outreach template.
func DefaultTemplateInfo() TemplateInfo {
	return TemplateInfo{
		Description: `This email is for outreach to potential partners for 180 Degrees Consulting, IIT Kharagpur.
It should introduce myself as Parth Sethi, Executive Head at 180 Degrees Consulting,
acknowledge something specific about the recipient's company, explain 180DC's services,
suggest potential collaboration areas, and request a brief call.`,
		Tone: "Professional, friendly, and concise",
		KeyPoints: `- Introduction: I am Parth Sethi, Executive Head at 180 Degrees Consulting, IIT Kharagpur
- Acknowledge the recipient's company with specific details that show research
- Explain that 180DC IIT Kharagpur is a student-run consultancy providing data-driven strategic and operational services
- Mention that our expertise can support their company in relevant areas (be specific to their industry)
- Explain our consultants offer fresh, analytical perspectives to address business challenges
- Request for a brief call to discuss strategic priorities and potential collaboration`,
		Template: `Respected $TITLE $LAST_NAME,

I am Parth Sethi, Executive Head at 180 Degrees Consulting, IIT Kharagpur. $EMAIL_BODY

Best regards,
Parth Sethi
Executive Head
180 Degrees Consulting, IIT Kharagpur
https://www.180dc.org/branches/IITKGP
`,
	}
}

// TemplateVars builds the substitution variables for one contact. Raw contact
// fields whose column names are valid identifiers are exposed as-is; the
// built-in names take precedence.
func TemplateVars(c Contact, body string) map[string]string {
	vars := make(map[string]string, len(c)+5)
	for column, value := range c {
		if isIdentifier(column) {
			vars[column] = value
		}
	}
	vars["FIRST_NAME"] = c.FirstName()
	vars["LAST_NAME"] = c.LastName()
	vars["TITLE"] = c.Title()
	vars["COMPANY"] = c.Company()
	vars["EMAIL_BODY"] = body
	return vars
}

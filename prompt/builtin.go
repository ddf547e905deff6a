package prompt

// DefaultTones are the tone choices the legacy forms offered.
var DefaultTones = []string{"Formal", "Professional", "Friendly", "Casual", "Urgent", "Persuasive"}

// builtins are the three legacy form variants, collapsed into data.
var builtins = []*Template{
	{
		ID:         "email",
		Title:      "Email Generator",
		OutputMode: OutputPlainText,
		Slots: []Slot{
			{Name: "sender_name", Label: "Your Name", Kind: KindShortText, Required: true},
			{Name: "recipient_name", Label: "Recipient's Name", Kind: KindShortText, Required: true},
			{Name: "purpose", Label: "Purpose of the Email", Kind: KindShortText, Required: true},
			{Name: "tone", Label: "Desired Tone", Kind: KindEnumChoice, Required: true, Choices: DefaultTones},
			{Name: "key_points", Label: "Key Points to Include", Kind: KindMultilineText, Required: true},
		},
		Body: `As an expert email writing assistant, your task is to craft a professional and effective email.

Instructions:
1. Create a clear, relevant, and compelling subject line. Do not use placeholders like "[Subject]".
2. The email must be addressed to {recipient_name} and signed by {sender_name}.
3. The tone of the email must be {tone}.
4. The core purpose is: "{purpose}".
5. Seamlessly integrate the following key points into the email body:
{key_points}
6. Ensure the final output is only the email itself (subject, body, closing), with no extra commentary or notes.`,
	},
	{
		ID:         "cover-letter",
		Title:      "Cover Letter Generator",
		OutputMode: OutputPlainText,
		Slots: []Slot{
			{Name: "applicant_name", Label: "Your Name", Kind: KindShortText, Required: true},
			{Name: "role", Label: "Role You Are Applying For", Kind: KindShortText, Required: true},
			{Name: "company", Label: "Company", Kind: KindShortText, Required: true},
			{Name: "tone", Label: "Desired Tone", Kind: KindEnumChoice, Required: true, Choices: DefaultTones},
			{Name: "highlights", Label: "Highlights to Mention", Kind: KindMultilineText, Required: true},
		},
		Body: `As an expert career writing assistant, draft a compelling cover letter.

Instructions:
1. The letter is from {applicant_name}, applying for the {role} position at {company}.
2. The tone of the letter must be {tone}.
3. Work each of these highlights into the letter naturally:
{highlights}
4. Keep it to three or four paragraphs and end with a confident closing.
5. Output only the letter itself, with no extra commentary.`,
	},
	{
		ID:         "newsletter",
		Title:      "Newsletter Section Generator",
		OutputMode: OutputMarkup,
		Slots: []Slot{
			{Name: "brand", Label: "Brand or Company", Kind: KindShortText, Required: true},
			{Name: "audience", Label: "Audience", Kind: KindShortText, Required: true},
			{Name: "tone", Label: "Desired Tone", Kind: KindEnumChoice, Required: true, Choices: DefaultTones},
			{Name: "stories", Label: "Stories to Cover", Kind: KindMultilineText, Required: true},
			{Name: "call_to_action", Label: "Call to Action", Kind: KindShortText, Required: false},
		},
		Body: `You are drafting an HTML newsletter section for {brand}.

Instructions:
1. The audience is {audience} and the tone must be {tone}.
2. Cover each of the following stories in its own short section:
{stories}
3. If a call to action is given, close with it: {call_to_action}
4. Respond with an HTML fragment only. Use only div, h1-h6, p, a and span tags; links may carry href, target and style attributes.
5. Do not include scripts, event handlers, or any commentary outside the fragment.`,
	},
}

// Builtins returns a registry holding the built-in templates.
func Builtins() (*Registry, error) {
	r := NewRegistry()
	for _, t := range builtins {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

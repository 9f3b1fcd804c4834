package email

// PreviewData holds sample template data, keyed by template, used to render
// previews of every template.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Lang":     "pt-BR",
		"Subject":  "Bem-vindo ao Nutri!",
		"UserName": "Ana",
		"Greeting": "Olá, Ana!",
		"Body":     "Sua conta foi criada.",
	},
}

// Preview renders templateName with its PreviewData.
func (c *Client) Preview(templateName Template) (string, error) {
	return c.Render(templateName, PreviewData[templateName])
}

// internal/generator/template.go
package generator

import (
	"strings"

	"github.com/leadloop/outreach-backend/internal/model"
)

func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

func templateData(lead *model.Lead, coach *model.Coach) map[string]string {
	firstName := lead.FirstName
	if firstName == "" {
		firstName = "there"
	}
	return map[string]string{
		"first_name":       firstName,
		"last_name":        lead.LastName,
		"company":          lead.Company,
		"goals":            lead.Goals,
		"coach_first_name": coach.FirstName,
		"coach_last_name":  coach.LastName,
		"specialty":        coach.Specialty,
	}
}

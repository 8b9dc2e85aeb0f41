package layout

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-fitter/internal/types"
)

// text returns a string of exactly n characters built from words
func text(n int) string {
	s := strings.Repeat("abcdefghi ", n/10+1)
	return s[:n]
}

func bullets(count, length int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = text(length)
	}
	return out
}

func workEntries(count, bulletCount, bulletLength int) []types.WorkExperience {
	entries := make([]types.WorkExperience, count)
	for i := range entries {
		entries[i] = types.WorkExperience{
			ID:        fmt.Sprintf("exp_%03d", i+1),
			Company:   "Acme Corp",
			Position:  "Senior Software Engineer",
			Location:  "New York, NY",
			StartDate: "2019-01",
			EndDate:   "2021-06",
			Bullets:   bullets(bulletCount, bulletLength),
		}
	}
	return entries
}

func sparseDocument() *types.Document {
	return &types.Document{
		PersonalInfo:   &types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		WorkExperience: workEntries(1, 3, 40),
	}
}

func denseDocument() *types.Document {
	return &types.Document{
		PersonalInfo:   &types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100"},
		WorkExperience: workEntries(6, 6, 90),
	}
}

func veryDenseDocument() *types.Document {
	return &types.Document{
		PersonalInfo:   &types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100"},
		WorkExperience: workEntries(8, 8, 180),
	}
}

func hugeDocument() *types.Document {
	return &types.Document{
		PersonalInfo:   &types.PersonalInfo{Name: "Jane Doe"},
		Summary:        text(600),
		WorkExperience: workEntries(20, 10, 300),
	}
}

func fullDocument() *types.Document {
	return &types.Document{
		PersonalInfo: &types.PersonalInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Boston, MA",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		Summary:        text(320),
		WorkExperience: workEntries(3, 4, 110),
		Education: []types.Education{
			{Degree: "BSc", Institution: "MIT", Field: "Computer Science", GraduationDate: "2015", GPA: "3.9"},
			{Degree: "MSc", Institution: "Stanford", Field: "Computer Science", GraduationDate: "2017"},
		},
		Skills: []string{"Go", "PostgreSQL", "Kubernetes", "gRPC", "Terraform", "AWS"},
		Other: []types.OtherSection{
			{Title: "Certifications", Items: bullets(2, 60)},
		},
	}
}

func fixtureDocuments() map[string]*types.Document {
	return map[string]*types.Document{
		"empty":      {},
		"sparse":     sparseDocument(),
		"dense":      denseDocument(),
		"very dense": veryDenseDocument(),
		"huge":       hugeDocument(),
		"full":       fullDocument(),
		"unbroken":   {Summary: strings.Repeat("x", 2500)},
	}
}

package main

import "github.com/google/uuid"

// demoRecord is the embedded sample dataset the CLI searches when no
// other source is configured -- enough to exercise tagged keys, multiple
// fields, and highlighting without any external data file.
type demoRecord struct {
	ID          string
	Title       string
	Description string
	Tags        []string
}

func demoDataset() []demoRecord {
	titles := []struct {
		title, desc string
		tags        []string
	}{
		{"Old Man River", "A folk song about the Mississippi", []string{"music", "folk"}},
		{"The Old Man and the Sea", "Hemingway's novella about an aging fisherman", []string{"book", "classic"}},
		{"John Ronald Reuel Tolkien", "Author of The Lord of the Rings", []string{"author", "fantasy"}},
		{"John Doe", "Placeholder name used in examples", []string{"placeholder"}},
		{"Jane Doe", "Placeholder name used in examples", []string{"placeholder"}},
		{"Manhattan Project", "World War II research and development project", []string{"history"}},
		{"Manchester United", "Association football club in England", []string{"sports", "football"}},
		{"New Manager Onboarding", "Internal handbook for first-time managers", []string{"handbook"}},
		{"Fuzzy String Matching", "Approximate string matching overview", []string{"algorithm"}},
		{"Bit Parallel LCS", "Hyyro's bit-parallel algorithm for LCS length", []string{"algorithm"}},
	}
	out := make([]demoRecord, 0, len(titles))
	for _, t := range titles {
		out = append(out, demoRecord{
			ID:          uuid.NewString(),
			Title:       t.title,
			Description: t.desc,
			Tags:        t.tags,
		})
	}
	return out
}

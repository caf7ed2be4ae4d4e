package domain

import "testing"

func TestWordEntry_SenseByID(t *testing.T) {
	t.Parallel()

	entry := WordEntry{
		Senses: []Sense{
			{ID: 5, SenseNo: 1, DefinitionText: "a greeting"},
			{ID: 7, SenseNo: 2, DefinitionText: "a farewell"},
		},
	}

	if s := entry.SenseByID(7); s == nil || s.SenseNo != 2 {
		t.Fatalf("SenseByID(7) = %+v, want sense_no 2", s)
	}
	if s := entry.SenseByID(99); s != nil {
		t.Fatalf("SenseByID(99) = %+v, want nil", s)
	}
}

func TestWordEntry_IsDefined(t *testing.T) {
	t.Parallel()

	undefined := WordEntry{Senses: []Sense{{SenseNo: 1}}}
	if undefined.IsDefined() {
		t.Error("entry with empty definitions should not be defined")
	}

	defined := WordEntry{Senses: []Sense{{SenseNo: 1, DefinitionText: "a greeting"}}}
	if !defined.IsDefined() {
		t.Error("entry with a definition should be defined")
	}
}

func TestRelationType_IsValid(t *testing.T) {
	t.Parallel()

	valid := []RelationType{
		RelationSynonym, RelationAntonym, RelationHomonym,
		RelationVariant, RelationHypernym, RelationHyponym,
	}
	for _, r := range valid {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if RelationType("meronym").IsValid() {
		t.Error("meronym is not a supported relation type")
	}
	if RelationType("").IsValid() {
		t.Error("empty relation type must be invalid")
	}
}

func TestEntryStatus_IsValid(t *testing.T) {
	t.Parallel()

	if !EntryStatusDraft.IsValid() || !EntryStatusPublished.IsValid() {
		t.Error("draft and published must be valid")
	}
	if EntryStatus("archived").IsValid() {
		t.Error("archived is not a supported status")
	}
}

func TestSlugFromName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Nufi", "nufi"},
		{"Fe'efe'e", "feefee"},
		{"Middle High German", "middle-high-german"},
		{"  Yemba ", "yemba"},
	}
	for _, tt := range tests {
		if got := SlugFromName(tt.in); got != tt.want {
			t.Errorf("SlugFromName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

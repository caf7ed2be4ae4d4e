package domain

// EntryStatus represents the editorial state of a word entry.
type EntryStatus string

const (
	EntryStatusDraft     EntryStatus = "draft"
	EntryStatusPublished EntryStatus = "published"
)

func (s EntryStatus) String() string { return string(s) }

func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusDraft, EntryStatusPublished:
		return true
	}
	return false
}

// RelationType represents the kind of semantic link between a sense and
// another entry.
type RelationType string

const (
	RelationSynonym  RelationType = "synonym"
	RelationAntonym  RelationType = "antonym"
	RelationHomonym  RelationType = "homonym"
	RelationVariant  RelationType = "variant"
	RelationHypernym RelationType = "hypernym"
	RelationHyponym  RelationType = "hyponym"
)

func (r RelationType) String() string { return string(r) }

func (r RelationType) IsValid() bool {
	switch r {
	case RelationSynonym, RelationAntonym, RelationHomonym,
		RelationVariant, RelationHypernym, RelationHyponym:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}
